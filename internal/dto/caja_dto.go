package dto

import (
	"time"

	"gympos/internal/conciliacion"
	"gympos/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	// Fecha is the business date; empty means today.
	Fecha string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

// TotalesInformados are the figures the operator saw before confirming a close.
// They are only compared against the recomputed totals, never stored as such.
// Without TotalGeneral no deviation is classified.
type TotalesInformados struct {
	TotalCuotas  *decimal.Decimal `json:"total_cuotas"`
	TotalBebidas *decimal.Decimal `json:"total_bebidas"`
	TotalGeneral *decimal.Decimal `json:"total_general"`
}

type CerrarCajaRequest struct {
	Tipo          string             `json:"tipo"          validate:"required"` // parcial | completo
	Totales       *TotalesInformados `json:"totales"`
	Observaciones *string            `json:"observaciones" validate:"omitempty,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaResponse struct {
	ID                    string          `json:"id"`
	Fecha                 string          `json:"fecha"`
	Estado                string          `json:"estado"`
	OpenedAt              string          `json:"opened_at"`
	ClosedAt              *string         `json:"closed_at"`
	TotalEfectivo         decimal.Decimal `json:"total_efectivo"`
	TotalElectronico      decimal.Decimal `json:"total_electronico"`
	TotalGeneral          decimal.Decimal `json:"total_general"`
	CantidadPagos         int             `json:"cantidad_pagos"`
	CantidadVentasBebidas int             `json:"cantidad_ventas_bebidas"`
	Observaciones         *string         `json:"observaciones"`
}

func NewCajaResponse(c *model.Caja) *CajaResponse {
	if c == nil {
		return nil
	}
	resp := &CajaResponse{
		ID:                    c.ID.String(),
		Fecha:                 c.Fecha,
		Estado:                c.Estado,
		OpenedAt:              c.OpenedAt.Format(time.RFC3339),
		TotalEfectivo:         c.TotalEfectivo,
		TotalElectronico:      c.TotalElectronico,
		TotalGeneral:          c.TotalGeneral,
		CantidadPagos:         c.CantidadPagos,
		CantidadVentasBebidas: c.CantidadVentasBebidas,
		Observaciones:         c.Observaciones,
	}
	if c.ClosedAt != nil {
		s := c.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &s
	}
	return resp
}

// CajaActualResponse is GET /register/current. Resumen carries the running
// totals of the open register.
type CajaActualResponse struct {
	Abierta bool                  `json:"abierta"`
	Caja    *CajaResponse         `json:"caja"`
	Resumen *conciliacion.Resumen `json:"resumen"`
}

type DesvioResponse struct {
	TotalInformado decimal.Decimal `json:"total_informado"`
	Monto          decimal.Decimal `json:"monto"`
	Porcentaje     decimal.Decimal `json:"porcentaje"`
	Clasificacion  string          `json:"clasificacion"` // normal | advertencia | critico
}

type CierreResponse struct {
	ID     string `json:"id"`
	CajaID string `json:"caja_id"`
	Fecha  string `json:"fecha"`
	Tipo   string `json:"tipo"`

	TotalCuotas  decimal.Decimal `json:"total_cuotas"`
	TotalBebidas decimal.Decimal `json:"total_bebidas"`
	TotalGastos  decimal.Decimal `json:"total_gastos"`
	TotalGeneral decimal.Decimal `json:"total_general"`
	TotalNeto    decimal.Decimal `json:"total_neto"`

	Efectivo         decimal.Decimal `json:"efectivo"`
	Electronico      decimal.Decimal `json:"electronico"`
	MixtoEfectivo    decimal.Decimal `json:"mixto_efectivo"`
	MixtoElectronico decimal.Decimal `json:"mixto_electronico"`
	NetoEfectivo     decimal.Decimal `json:"neto_efectivo"`
	NetoElectronico  decimal.Decimal `json:"neto_electronico"`

	CantidadPagos         int `json:"cantidad_pagos"`
	CantidadVentasBebidas int `json:"cantidad_ventas_bebidas"`
	CantidadSociosNuevos  int `json:"cantidad_socios_nuevos"`
	CantidadGastos        int `json:"cantidad_gastos"`

	Desvio        *DesvioResponse     `json:"desvio"`
	Observaciones *string             `json:"observaciones"`
	Detalle       model.DetalleCierre `json:"detalle"`
	CreatedAt     string              `json:"created_at"`
}

func NewCierreResponse(c *model.CierreCaja) *CierreResponse {
	resp := &CierreResponse{
		ID:                    c.ID.String(),
		CajaID:                c.CajaID.String(),
		Fecha:                 c.Fecha,
		Tipo:                  c.Tipo,
		TotalCuotas:           c.TotalCuotas,
		TotalBebidas:          c.TotalBebidas,
		TotalGastos:           c.TotalGastos,
		TotalGeneral:          c.TotalGeneral,
		TotalNeto:             c.TotalNeto,
		Efectivo:              c.Efectivo,
		Electronico:           c.Electronico,
		MixtoEfectivo:         c.MixtoEfectivo,
		MixtoElectronico:      c.MixtoElectronico,
		NetoEfectivo:          c.NetoEfectivo,
		NetoElectronico:       c.NetoElectronico,
		CantidadPagos:         c.CantidadPagos,
		CantidadVentasBebidas: c.CantidadVentasBebidas,
		CantidadSociosNuevos:  c.CantidadSociosNuevos,
		CantidadGastos:        c.CantidadGastos,
		Observaciones:         c.Observaciones,
		Detalle:               c.Detalle.Data(),
		CreatedAt:             c.CreatedAt.Format(time.RFC3339),
	}
	if c.TotalInformado != nil && c.Desvio != nil && c.DesvioPct != nil && c.ClasificacionDesvio != nil {
		resp.Desvio = &DesvioResponse{
			TotalInformado: *c.TotalInformado,
			Monto:          *c.Desvio,
			Porcentaje:     *c.DesvioPct,
			Clasificacion:  *c.ClasificacionDesvio,
		}
	}
	return resp
}

func NewCierreListResponse(cierres []model.CierreCaja) []CierreResponse {
	out := make([]CierreResponse, 0, len(cierres))
	for i := range cierres {
		out = append(out, *NewCierreResponse(&cierres[i]))
	}
	return out
}
