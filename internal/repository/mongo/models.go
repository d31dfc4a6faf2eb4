package mongo

import (
	"encoding/json"
	"strings"
	"time"

	"gympos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/datatypes"
)

// Money is stored as Decimal128 so totals can be inspected and aggregated in the
// shell without float drift.

func dec(d decimal.Decimal) bson.Decimal128 {
	v, err := bson.ParseDecimal128(d.String())
	if err != nil {
		return bson.NewDecimal128(0, 0)
	}
	return v
}

func fromDec(v bson.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}

// ── caja ─────────────────────────────────────────────────────────────────────

type cajaDoc struct {
	ID                    string          `bson:"_id"`
	Fecha                 string          `bson:"fecha"`
	Estado                string          `bson:"estado"`
	OpenedAt              time.Time       `bson:"opened_at"`
	ClosedAt              *time.Time      `bson:"closed_at,omitempty"`
	TotalEfectivo         bson.Decimal128 `bson:"total_efectivo"`
	TotalElectronico      bson.Decimal128 `bson:"total_electronico"`
	TotalGeneral          bson.Decimal128 `bson:"total_general"`
	CantidadPagos         int             `bson:"cantidad_pagos"`
	CantidadVentasBebidas int             `bson:"cantidad_ventas_bebidas"`
	Observaciones         *string         `bson:"observaciones,omitempty"`
}

func toCajaDoc(c *model.Caja) *cajaDoc {
	return &cajaDoc{
		ID:                    c.ID.String(),
		Fecha:                 c.Fecha,
		Estado:                c.Estado,
		OpenedAt:              c.OpenedAt,
		ClosedAt:              c.ClosedAt,
		TotalEfectivo:         dec(c.TotalEfectivo),
		TotalElectronico:      dec(c.TotalElectronico),
		TotalGeneral:          dec(c.TotalGeneral),
		CantidadPagos:         c.CantidadPagos,
		CantidadVentasBebidas: c.CantidadVentasBebidas,
		Observaciones:         c.Observaciones,
	}
}

func fromCajaDoc(m *cajaDoc) *model.Caja {
	return &model.Caja{
		ID:                    parseID(m.ID),
		Fecha:                 m.Fecha,
		Estado:                m.Estado,
		OpenedAt:              m.OpenedAt,
		ClosedAt:              m.ClosedAt,
		TotalEfectivo:         fromDec(m.TotalEfectivo),
		TotalElectronico:      fromDec(m.TotalElectronico),
		TotalGeneral:          fromDec(m.TotalGeneral),
		CantidadPagos:         m.CantidadPagos,
		CantidadVentasBebidas: m.CantidadVentasBebidas,
		Observaciones:         m.Observaciones,
	}
}

// ── pago ─────────────────────────────────────────────────────────────────────

type pagoDoc struct {
	ID               string          `bson:"_id"`
	SocioNombre      string          `bson:"socio_nombre"`
	SocioDNI         string          `bson:"socio_dni"`
	Monto            bson.Decimal128 `bson:"monto"`
	Fecha            string          `bson:"fecha"`
	MetodoPago       string          `bson:"metodo_pago"`
	MontoEfectivo    bson.Decimal128 `bson:"monto_efectivo"`
	MontoElectronico bson.Decimal128 `bson:"monto_electronico"`
	Tipo             string          `bson:"tipo"`
	CajaID           string          `bson:"caja_id"`
	CreatedAt        time.Time       `bson:"created_at"`
}

func toPagoDoc(p *model.Pago) *pagoDoc {
	return &pagoDoc{
		ID:               p.ID.String(),
		SocioNombre:      p.SocioNombre,
		SocioDNI:         p.SocioDNI,
		Monto:            dec(p.Monto),
		Fecha:            p.Fecha,
		MetodoPago:       p.MetodoPago,
		MontoEfectivo:    dec(p.MontoEfectivo),
		MontoElectronico: dec(p.MontoElectronico),
		Tipo:             p.Tipo,
		CajaID:           p.CajaID.String(),
		CreatedAt:        p.CreatedAt,
	}
}

func fromPagoDoc(m *pagoDoc) model.Pago {
	return model.Pago{
		ID:               parseID(m.ID),
		SocioNombre:      m.SocioNombre,
		SocioDNI:         m.SocioDNI,
		Monto:            fromDec(m.Monto),
		Fecha:            m.Fecha,
		MetodoPago:       m.MetodoPago,
		MontoEfectivo:    fromDec(m.MontoEfectivo),
		MontoElectronico: fromDec(m.MontoElectronico),
		Tipo:             m.Tipo,
		CajaID:           parseID(m.CajaID),
		CreatedAt:        m.CreatedAt,
	}
}

// ── bebida ───────────────────────────────────────────────────────────────────

type bebidaDoc struct {
	ID     string `bson:"_id"`
	Nombre string `bson:"nombre"`
	// NombreClave carries the unique index that makes names case-insensitive.
	NombreClave string          `bson:"nombre_clave"`
	Precio      bson.Decimal128 `bson:"precio"`
	Stock       int             `bson:"stock"`
	Categoria   string          `bson:"categoria"`
	Activo      bool            `bson:"activo"`
	CreatedAt   time.Time       `bson:"created_at"`
	UpdatedAt   time.Time       `bson:"updated_at"`
}

func nombreClave(nombre string) string { return strings.ToLower(strings.TrimSpace(nombre)) }

func toBebidaDoc(b *model.Bebida) *bebidaDoc {
	return &bebidaDoc{
		ID:          b.ID.String(),
		Nombre:      b.Nombre,
		NombreClave: nombreClave(b.Nombre),
		Precio:      dec(b.Precio),
		Stock:       b.Stock,
		Categoria:   b.Categoria,
		Activo:      b.Activo,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func fromBebidaDoc(m *bebidaDoc) *model.Bebida {
	return &model.Bebida{
		ID:        parseID(m.ID),
		Nombre:    m.Nombre,
		Precio:    fromDec(m.Precio),
		Stock:     m.Stock,
		Categoria: m.Categoria,
		Activo:    m.Activo,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ── venta ────────────────────────────────────────────────────────────────────

type ventaDoc struct {
	ID               string          `bson:"_id"`
	BebidaID         string          `bson:"bebida_id"`
	Nombre           string          `bson:"nombre"`
	Cantidad         int             `bson:"cantidad"`
	PrecioUnitario   bson.Decimal128 `bson:"precio_unitario"`
	PrecioTotal      bson.Decimal128 `bson:"precio_total"`
	MetodoPago       string          `bson:"metodo_pago"`
	MontoEfectivo    bson.Decimal128 `bson:"monto_efectivo"`
	MontoElectronico bson.Decimal128 `bson:"monto_electronico"`
	Fecha            string          `bson:"fecha"`
	CajaID           string          `bson:"caja_id"`
	StockAnterior    int             `bson:"stock_anterior"`
	StockNuevo       int             `bson:"stock_nuevo"`
	CreatedAt        time.Time       `bson:"created_at"`
}

func toVentaDoc(v *model.VentaBebida) *ventaDoc {
	return &ventaDoc{
		ID:               v.ID.String(),
		BebidaID:         v.BebidaID.String(),
		Nombre:           v.Nombre,
		Cantidad:         v.Cantidad,
		PrecioUnitario:   dec(v.PrecioUnitario),
		PrecioTotal:      dec(v.PrecioTotal),
		MetodoPago:       v.MetodoPago,
		MontoEfectivo:    dec(v.MontoEfectivo),
		MontoElectronico: dec(v.MontoElectronico),
		Fecha:            v.Fecha,
		CajaID:           v.CajaID.String(),
		StockAnterior:    v.StockAnterior,
		StockNuevo:       v.StockNuevo,
		CreatedAt:        v.CreatedAt,
	}
}

func fromVentaDoc(m *ventaDoc) model.VentaBebida {
	return model.VentaBebida{
		ID:               parseID(m.ID),
		BebidaID:         parseID(m.BebidaID),
		Nombre:           m.Nombre,
		Cantidad:         m.Cantidad,
		PrecioUnitario:   fromDec(m.PrecioUnitario),
		PrecioTotal:      fromDec(m.PrecioTotal),
		MetodoPago:       m.MetodoPago,
		MontoEfectivo:    fromDec(m.MontoEfectivo),
		MontoElectronico: fromDec(m.MontoElectronico),
		Fecha:            m.Fecha,
		CajaID:           parseID(m.CajaID),
		StockAnterior:    m.StockAnterior,
		StockNuevo:       m.StockNuevo,
		CreatedAt:        m.CreatedAt,
	}
}

// ── gasto ────────────────────────────────────────────────────────────────────

type gastoDoc struct {
	ID               string          `bson:"_id"`
	Monto            bson.Decimal128 `bson:"monto"`
	Descripcion      string          `bson:"descripcion"`
	Fecha            string          `bson:"fecha"`
	RegistradoPor    string          `bson:"registrado_por"`
	MetodoPago       string          `bson:"metodo_pago"`
	MontoEfectivo    bson.Decimal128 `bson:"monto_efectivo"`
	MontoElectronico bson.Decimal128 `bson:"monto_electronico"`
	CajaID           string          `bson:"caja_id"`
	CreatedAt        time.Time       `bson:"created_at"`
}

func toGastoDoc(g *model.Gasto) *gastoDoc {
	return &gastoDoc{
		ID:               g.ID.String(),
		Monto:            dec(g.Monto),
		Descripcion:      g.Descripcion,
		Fecha:            g.Fecha,
		RegistradoPor:    g.RegistradoPor,
		MetodoPago:       g.MetodoPago,
		MontoEfectivo:    dec(g.MontoEfectivo),
		MontoElectronico: dec(g.MontoElectronico),
		CajaID:           g.CajaID.String(),
		CreatedAt:        g.CreatedAt,
	}
}

func fromGastoDoc(m *gastoDoc) model.Gasto {
	return model.Gasto{
		ID:               parseID(m.ID),
		Monto:            fromDec(m.Monto),
		Descripcion:      m.Descripcion,
		Fecha:            m.Fecha,
		RegistradoPor:    m.RegistradoPor,
		MetodoPago:       m.MetodoPago,
		MontoEfectivo:    fromDec(m.MontoEfectivo),
		MontoElectronico: fromDec(m.MontoElectronico),
		CajaID:           parseID(m.CajaID),
		CreatedAt:        m.CreatedAt,
	}
}

// ── socio ────────────────────────────────────────────────────────────────────

type socioDoc struct {
	ID        string    `bson:"_id"`
	Nombre    string    `bson:"nombre"`
	DNI       string    `bson:"dni"`
	Actividad string    `bson:"actividad"`
	FechaAlta time.Time `bson:"fecha_alta"`
}

func toSocioDoc(s *model.Socio) *socioDoc {
	return &socioDoc{ID: s.ID.String(), Nombre: s.Nombre, DNI: s.DNI, Actividad: s.Actividad, FechaAlta: s.FechaAlta}
}

func fromSocioDoc(m *socioDoc) model.Socio {
	return model.Socio{ID: parseID(m.ID), Nombre: m.Nombre, DNI: m.DNI, Actividad: m.Actividad, FechaAlta: m.FechaAlta}
}

// ── cierre ───────────────────────────────────────────────────────────────────

type cierreDoc struct {
	ID     string `bson:"_id"`
	CajaID string `bson:"caja_id"`
	Fecha  string `bson:"fecha"`
	Tipo   string `bson:"tipo"`

	TotalCuotas      bson.Decimal128 `bson:"total_cuotas"`
	TotalBebidas     bson.Decimal128 `bson:"total_bebidas"`
	TotalGastos      bson.Decimal128 `bson:"total_gastos"`
	TotalGeneral     bson.Decimal128 `bson:"total_general"`
	TotalNeto        bson.Decimal128 `bson:"total_neto"`
	Efectivo         bson.Decimal128 `bson:"efectivo"`
	Electronico      bson.Decimal128 `bson:"electronico"`
	MixtoEfectivo    bson.Decimal128 `bson:"mixto_efectivo"`
	MixtoElectronico bson.Decimal128 `bson:"mixto_electronico"`
	NetoEfectivo     bson.Decimal128 `bson:"neto_efectivo"`
	NetoElectronico  bson.Decimal128 `bson:"neto_electronico"`

	CantidadPagos         int `bson:"cantidad_pagos"`
	CantidadVentasBebidas int `bson:"cantidad_ventas_bebidas"`
	CantidadSociosNuevos  int `bson:"cantidad_socios_nuevos"`
	CantidadGastos        int `bson:"cantidad_gastos"`

	TotalInformado      *bson.Decimal128 `bson:"total_informado,omitempty"`
	Desvio              *bson.Decimal128 `bson:"desvio,omitempty"`
	DesvioPct           *bson.Decimal128 `bson:"desvio_pct,omitempty"`
	ClasificacionDesvio *string          `bson:"clasificacion_desvio,omitempty"`
	Observaciones       *string          `bson:"observaciones,omitempty"`

	// Detalle is the itemized activity as a plain document (amounts as strings).
	Detalle   bson.D    `bson:"detalle"`
	CreatedAt time.Time `bson:"created_at"`
}

func optDec(d *decimal.Decimal) *bson.Decimal128 {
	if d == nil {
		return nil
	}
	v := dec(*d)
	return &v
}

func optFromDec(v *bson.Decimal128) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := fromDec(*v)
	return &d
}

func toCierreDoc(c *model.CierreCaja) (*cierreDoc, error) {
	raw, err := json.Marshal(c.Detalle.Data())
	if err != nil {
		return nil, err
	}
	var detalle bson.D
	if err := bson.UnmarshalExtJSON(raw, false, &detalle); err != nil {
		return nil, err
	}
	return &cierreDoc{
		ID:                    c.ID.String(),
		CajaID:                c.CajaID.String(),
		Fecha:                 c.Fecha,
		Tipo:                  c.Tipo,
		TotalCuotas:           dec(c.TotalCuotas),
		TotalBebidas:          dec(c.TotalBebidas),
		TotalGastos:           dec(c.TotalGastos),
		TotalGeneral:          dec(c.TotalGeneral),
		TotalNeto:             dec(c.TotalNeto),
		Efectivo:              dec(c.Efectivo),
		Electronico:           dec(c.Electronico),
		MixtoEfectivo:         dec(c.MixtoEfectivo),
		MixtoElectronico:      dec(c.MixtoElectronico),
		NetoEfectivo:          dec(c.NetoEfectivo),
		NetoElectronico:       dec(c.NetoElectronico),
		CantidadPagos:         c.CantidadPagos,
		CantidadVentasBebidas: c.CantidadVentasBebidas,
		CantidadSociosNuevos:  c.CantidadSociosNuevos,
		CantidadGastos:        c.CantidadGastos,
		TotalInformado:        optDec(c.TotalInformado),
		Desvio:                optDec(c.Desvio),
		DesvioPct:             optDec(c.DesvioPct),
		ClasificacionDesvio:   c.ClasificacionDesvio,
		Observaciones:         c.Observaciones,
		Detalle:               detalle,
		CreatedAt:             c.CreatedAt,
	}, nil
}

func fromCierreDoc(m *cierreDoc) (model.CierreCaja, error) {
	var detalle model.DetalleCierre
	if len(m.Detalle) > 0 {
		raw, err := bson.MarshalExtJSON(m.Detalle, false, false)
		if err != nil {
			return model.CierreCaja{}, err
		}
		if err := json.Unmarshal(raw, &detalle); err != nil {
			return model.CierreCaja{}, err
		}
	}
	return model.CierreCaja{
		ID:                    parseID(m.ID),
		CajaID:                parseID(m.CajaID),
		Fecha:                 m.Fecha,
		Tipo:                  m.Tipo,
		TotalCuotas:           fromDec(m.TotalCuotas),
		TotalBebidas:          fromDec(m.TotalBebidas),
		TotalGastos:           fromDec(m.TotalGastos),
		TotalGeneral:          fromDec(m.TotalGeneral),
		TotalNeto:             fromDec(m.TotalNeto),
		Efectivo:              fromDec(m.Efectivo),
		Electronico:           fromDec(m.Electronico),
		MixtoEfectivo:         fromDec(m.MixtoEfectivo),
		MixtoElectronico:      fromDec(m.MixtoElectronico),
		NetoEfectivo:          fromDec(m.NetoEfectivo),
		NetoElectronico:       fromDec(m.NetoElectronico),
		CantidadPagos:         m.CantidadPagos,
		CantidadVentasBebidas: m.CantidadVentasBebidas,
		CantidadSociosNuevos:  m.CantidadSociosNuevos,
		CantidadGastos:        m.CantidadGastos,
		TotalInformado:        optFromDec(m.TotalInformado),
		Desvio:                optFromDec(m.Desvio),
		DesvioPct:             optFromDec(m.DesvioPct),
		ClasificacionDesvio:   m.ClasificacionDesvio,
		Observaciones:         m.Observaciones,
		Detalle:               datatypes.NewJSONType(detalle),
		CreatedAt:             m.CreatedAt,
	}, nil
}
