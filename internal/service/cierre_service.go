package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gympos/internal/conciliacion"
	"gympos/internal/dto"
	"gympos/internal/model"
	"gympos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// CierreNotifier hands a complete close to background processing (PDF report,
// mail, broker event). Failures there never undo the close.
type CierreNotifier interface {
	NotificarCierre(ctx context.Context, cierre *model.CierreCaja) error
}

type CierreService interface {
	Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*model.CierreCaja, error)
	// Listar returns every snapshot, newest first.
	Listar(ctx context.Context) ([]model.CierreCaja, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error)
}

type cierreService struct {
	store    repository.Store
	caja     CajaService
	notifier CierreNotifier
}

// NewCierreService wires the close builder. notifier may be nil.
func NewCierreService(store repository.Store, caja CajaService, notifier CierreNotifier) CierreService {
	return &cierreService{store: store, caja: caja, notifier: notifier}
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
//   1. Require the open register
//   2. Gather payments, sales and expenses tagged to it (by register, not by date)
//   3. Gather members signed up since it opened (reporting only)
//   4. Recompute every total; the caller's totals only produce a desvio
//   5. Persist the snapshot (one complete snapshot per register)
//   6. Complete close: transition the register, in the same transaction when
//      the store has them, always after the snapshot insert; a retry after a
//      failed transition finishes it from the stored snapshot
//   7. Complete close: notify background processing

func (s *cierreService) Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*model.CierreCaja, error) {
	tipo := strings.ToLower(strings.TrimSpace(req.Tipo))
	if tipo != model.CierreParcial && tipo != model.CierreCompleto {
		return nil, fmt.Errorf("%w: tipo de cierre %q no soportado (parcial o completo)", ErrValidacion, req.Tipo)
	}

	caja, err := s.caja.Actual(ctx)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, fmt.Errorf("%w: no hay caja abierta para cerrar", ErrCajaNoAbierta)
	}

	pagos, ventas, gastos, err := movimientosDeCaja(ctx, s.store, caja.ID)
	if err != nil {
		return nil, err
	}
	ahora := time.Now()
	socios, err := s.store.Socios().List(ctx, caja.OpenedAt, ahora)
	if err != nil {
		return nil, storeErr("listar socios nuevos", err)
	}
	detalle, err := s.armarDetalle(ctx, pagos, ventas, gastos, socios)
	if err != nil {
		return nil, err
	}

	res := conciliacion.Resumir(pagos, ventas, gastos)
	cierre := &model.CierreCaja{
		ID:                    uuid.New(),
		CajaID:                caja.ID,
		Fecha:                 caja.Fecha,
		Tipo:                  tipo,
		TotalCuotas:           res.Cuotas.Total,
		TotalBebidas:          res.Bebidas.Total,
		TotalGastos:           res.Gastos.Total,
		TotalGeneral:          res.Ingresos.Total,
		TotalNeto:             res.Netos.TotalNeto,
		Efectivo:              res.Ingresos.Efectivo,
		Electronico:           res.Ingresos.Electronico,
		MixtoEfectivo:         res.Ingresos.MixtoEfectivo,
		MixtoElectronico:      res.Ingresos.MixtoElectronico,
		NetoEfectivo:          res.Netos.LadoEfectivo,
		NetoElectronico:       res.Netos.LadoElectronico,
		CantidadPagos:         res.CantidadPagos,
		CantidadVentasBebidas: res.CantidadVentas,
		CantidadSociosNuevos:  len(socios),
		CantidadGastos:        res.CantidadGastos,
		Observaciones:         req.Observaciones,
		Detalle:               datatypes.NewJSONType(detalle),
		CreatedAt:             ahora,
	}
	if req.Totales != nil {
		s.registrarDesvio(cierre, req.Totales)
	}

	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Cierres().Create(ctx, cierre); err != nil {
			return err
		}
		if tipo != model.CierreCompleto {
			return nil
		}
		return s.caja.Cerrar(ctx, tx, caja.ID, totalesDeCaja(cierre))
	})
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		// a complete snapshot for this register is already stored
		if cierre, err = s.completarCierre(ctx, caja.ID); err != nil {
			return nil, err
		}
	case errors.Is(err, ErrNoEncontrado), errors.Is(err, ErrStore):
		return nil, err
	case err != nil:
		return nil, storeErr("guardar cierre", err)
	}

	log.Info().
		Str("cierre_id", cierre.ID.String()).
		Str("caja_id", caja.ID.String()).
		Str("tipo", tipo).
		Str("total_general", cierre.TotalGeneral.String()).
		Str("total_neto", cierre.TotalNeto.String()).
		Msg("cierre de caja registrado")

	if tipo == model.CierreCompleto && s.notifier != nil {
		if err := s.notifier.NotificarCierre(ctx, cierre); err != nil {
			log.Warn().Err(err).Str("cierre_id", cierre.ID.String()).Msg("no se pudo encolar el reporte de cierre")
		}
	}
	return cierre, nil
}

// completarCierre finishes a complete close whose snapshot is already stored.
// Without transactions an earlier attempt may have stored it and failed before
// the register transition; the transition is then applied from the snapshot.
// When the register is already closed the close is reported as done.
func (s *cierreService) completarCierre(ctx context.Context, cajaID uuid.UUID) (*model.CierreCaja, error) {
	cierres, err := s.store.Cierres().List(ctx)
	if err != nil {
		return nil, storeErr("listar cierres", err)
	}
	var previo *model.CierreCaja
	for i := range cierres {
		if cierres[i].CajaID == cajaID && cierres[i].Tipo == model.CierreCompleto {
			previo = &cierres[i]
			break
		}
	}
	if previo == nil {
		return nil, fmt.Errorf("%w: la caja %s ya fue cerrada", ErrCajaNoAbierta, cajaID)
	}
	err = s.caja.Cerrar(ctx, nil, cajaID, totalesDeCaja(previo))
	if errors.Is(err, ErrNoEncontrado) {
		return nil, fmt.Errorf("%w: la caja %s ya fue cerrada", ErrCajaNoAbierta, cajaID)
	}
	if err != nil {
		return nil, err
	}
	log.Warn().
		Str("cierre_id", previo.ID.String()).
		Str("caja_id", cajaID.String()).
		Msg("caja cerrada a partir de un cierre completo ya guardado")
	return previo, nil
}

// totalesDeCaja are the figures a register keeps when a complete close
// transitions it: gross income by side, not net of expenses.
func totalesDeCaja(c *model.CierreCaja) model.TotalesCaja {
	return model.TotalesCaja{
		TotalEfectivo:         c.Efectivo.Add(c.MixtoEfectivo),
		TotalElectronico:      c.Electronico.Add(c.MixtoElectronico),
		TotalGeneral:          c.TotalGeneral,
		CantidadPagos:         c.CantidadPagos,
		CantidadVentasBebidas: c.CantidadVentasBebidas,
		Observaciones:         c.Observaciones,
	}
}

// registrarDesvio compares the operator's totals with the recomputed ones. The
// snapshot keeps the recomputed totals; the difference is recorded next to them.
func (s *cierreService) registrarDesvio(cierre *model.CierreCaja, t *dto.TotalesInformados) {
	generalOK := true
	ev := log.Warn().
		Str("caja_id", cierre.CajaID.String()).
		Str("total_calculado", cierre.TotalGeneral.String())
	if t.TotalGeneral != nil {
		d := conciliacion.CalcularDesvio(*t.TotalGeneral, cierre.TotalGeneral)
		informado := *t.TotalGeneral
		cierre.TotalInformado = &informado
		cierre.Desvio = &d.Monto
		cierre.DesvioPct = &d.Porcentaje
		cierre.ClasificacionDesvio = &d.Clasificacion
		generalOK = d.Monto.IsZero()
		ev = ev.Str("total_informado", informado.String()).Str("clasificacion", d.Clasificacion)
	}

	cuotasOK := t.TotalCuotas == nil || t.TotalCuotas.Equal(cierre.TotalCuotas)
	bebidasOK := t.TotalBebidas == nil || t.TotalBebidas.Equal(cierre.TotalBebidas)
	if generalOK && cuotasOK && bebidasOK {
		ev.Discard()
		return
	}
	if !cuotasOK {
		ev = ev.Str("cuotas_informado", t.TotalCuotas.String()).Str("cuotas_calculado", cierre.TotalCuotas.String())
	}
	if !bebidasOK {
		ev = ev.Str("bebidas_informado", t.TotalBebidas.String()).Str("bebidas_calculado", cierre.TotalBebidas.String())
	}
	ev.Msg("los totales informados no coinciden con los calculados")
}

// armarDetalle builds the itemized part of the snapshot. Payments are enriched
// with the member's data looked up by DNI; day visitors have no member row.
func (s *cierreService) armarDetalle(ctx context.Context, pagos []model.Pago, ventas []model.VentaBebida,
	gastos []model.Gasto, nuevos []model.Socio) (model.DetalleCierre, error) {
	dnis := make([]string, 0, len(pagos))
	vistos := make(map[string]bool, len(pagos))
	for _, p := range pagos {
		if p.SocioDNI != "" && !vistos[p.SocioDNI] {
			vistos[p.SocioDNI] = true
			dnis = append(dnis, p.SocioDNI)
		}
	}
	socios, err := s.store.Socios().FindByDNIs(ctx, dnis)
	if err != nil {
		return model.DetalleCierre{}, storeErr("buscar socios", err)
	}
	porDNI := make(map[string]model.Socio, len(socios))
	for _, soc := range socios {
		porDNI[soc.DNI] = soc
	}

	detalle := model.DetalleCierre{
		Pagos:         make([]model.PagoDetalle, 0, len(pagos)),
		VentasBebidas: ventas,
		SociosNuevos:  make([]model.SocioDetalle, 0, len(nuevos)),
		Gastos:        gastos,
	}
	for _, p := range pagos {
		pd := model.PagoDetalle{Pago: p}
		if soc, ok := porDNI[p.SocioDNI]; ok {
			pd.SocioActividad = soc.Actividad
			if pd.SocioNombre == "" {
				pd.SocioNombre = soc.Nombre
			}
		}
		detalle.Pagos = append(detalle.Pagos, pd)
	}
	for _, soc := range nuevos {
		detalle.SociosNuevos = append(detalle.SociosNuevos, model.SocioDetalle{
			ID:        soc.ID,
			Nombre:    soc.Nombre,
			DNI:       soc.DNI,
			Actividad: soc.Actividad,
			FechaAlta: soc.FechaAlta,
		})
	}
	if detalle.VentasBebidas == nil {
		detalle.VentasBebidas = []model.VentaBebida{}
	}
	if detalle.Gastos == nil {
		detalle.Gastos = []model.Gasto{}
	}
	return detalle, nil
}

func (s *cierreService) Listar(ctx context.Context) ([]model.CierreCaja, error) {
	cierres, err := s.store.Cierres().List(ctx)
	if err != nil {
		return nil, storeErr("listar cierres", err)
	}
	return cierres, nil
}

func (s *cierreService) Obtener(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error) {
	c, err := s.store.Cierres().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: cierre %s", ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, storeErr("buscar cierre", err)
	}
	return c, nil
}
