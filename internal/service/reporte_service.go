package service

import (
	"context"
	"fmt"

	"gympos/internal/conciliacion"
	"gympos/internal/dto"
	"gympos/internal/repository"
)

type ReporteService interface {
	Resumen(ctx context.Context, desde, hasta string) (*dto.ResumenReporteResponse, error)
}

type reporteService struct {
	store repository.Store
}

func NewReporteService(store repository.Store) ReporteService {
	return &reporteService{store: store}
}

// Resumen reconciles every record dated inside [desde, hasta], whatever
// register it belongs to.
func (s *reporteService) Resumen(ctx context.Context, desde, hasta string) (*dto.ResumenReporteResponse, error) {
	if err := validarFecha(desde); err != nil {
		return nil, err
	}
	if err := validarFecha(hasta); err != nil {
		return nil, err
	}
	if desde > hasta {
		return nil, fmt.Errorf("%w: desde (%s) es posterior a hasta (%s)", ErrValidacion, desde, hasta)
	}

	f := repository.Filtro{Desde: desde, Hasta: hasta}
	pagos, err := s.store.Pagos().List(ctx, f)
	if err != nil {
		return nil, storeErr("listar pagos", err)
	}
	ventas, err := s.store.Ventas().List(ctx, f)
	if err != nil {
		return nil, storeErr("listar ventas", err)
	}
	gastos, err := s.store.Gastos().List(ctx, f)
	if err != nil {
		return nil, storeErr("listar gastos", err)
	}

	res := conciliacion.Resumir(pagos, ventas, gastos)
	bruto := res.Ingresos.Total
	return &dto.ResumenReporteResponse{
		Desde:                desde,
		Hasta:                hasta,
		Resumen:              res,
		ParticipacionMetodos: conciliacion.ParticipacionPorMetodo(res.Ingresos),
		PctCuotas:            conciliacion.Pct(res.Cuotas.Total, bruto),
		PctBebidas:           conciliacion.Pct(res.Bebidas.Total, bruto),
		PctGastos:            conciliacion.Pct(res.Gastos.Total, bruto),
	}, nil
}
