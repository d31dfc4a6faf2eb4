package service

import (
	"context"
	"fmt"
	"strings"

	"gympos/internal/dto"
	"gympos/internal/model"
	"gympos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type GastoService interface {
	RegistrarGasto(ctx context.Context, req dto.RegistrarGastoRequest) (*model.Gasto, error)
	Listar(ctx context.Context, f dto.MovimientosFilter) ([]model.Gasto, error)
}

type gastoService struct {
	store repository.Store
	caja  CajaService
}

func NewGastoService(store repository.Store, caja CajaService) GastoService {
	return &gastoService{store: store, caja: caja}
}

func (s *gastoService) RegistrarGasto(ctx context.Context, req dto.RegistrarGastoRequest) (*model.Gasto, error) {
	caja, err := s.caja.RequerirAbierta(ctx, req.CajaID)
	if err != nil {
		return nil, err
	}
	if err := validarFecha(req.Fecha); err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(req.Descripcion)
	if desc == "" {
		return nil, fmt.Errorf("%w: la descripcion es obligatoria", ErrValidacion)
	}
	c, err := validarCobro(req.Monto, req.MetodoPago, req.MontoEfectivo, req.MontoElectronico)
	if err != nil {
		return nil, err
	}

	gasto := &model.Gasto{
		ID:               uuid.New(),
		Monto:            req.Monto,
		Descripcion:      desc,
		Fecha:            req.Fecha,
		RegistradoPor:    strings.TrimSpace(req.RegistradoPor),
		MetodoPago:       c.metodo,
		MontoEfectivo:    c.efectivo,
		MontoElectronico: c.electronico,
		CajaID:           caja.ID,
	}
	if err := s.store.Gastos().Create(ctx, gasto); err != nil {
		return nil, storeErr("registrar gasto", err)
	}
	log.Info().
		Str("gasto_id", gasto.ID.String()).
		Str("monto", gasto.Monto.String()).
		Str("registrado_por", gasto.RegistradoPor).
		Msg("gasto registrado")
	return gasto, nil
}

func (s *gastoService) Listar(ctx context.Context, f dto.MovimientosFilter) ([]model.Gasto, error) {
	filtro, err := filtroDesde(f)
	if err != nil {
		return nil, err
	}
	gastos, err := s.store.Gastos().List(ctx, filtro)
	if err != nil {
		return nil, storeErr("listar gastos", err)
	}
	return gastos, nil
}
