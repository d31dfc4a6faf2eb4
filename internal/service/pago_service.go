package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gympos/internal/dto"
	"gympos/internal/model"
	"gympos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type PagoService interface {
	// Registrar dispatches on req.Tipo (cuota when empty).
	Registrar(ctx context.Context, req dto.RegistrarPagoRequest) (*model.Pago, error)
	RegistrarCuota(ctx context.Context, req dto.RegistrarPagoRequest) (*model.Pago, error)
	RegistrarPaseDiario(ctx context.Context, req dto.RegistrarPagoRequest) (*model.Pago, error)
	Listar(ctx context.Context, f dto.MovimientosFilter) ([]model.Pago, error)
}

type pagoService struct {
	store repository.Store
	caja  CajaService
}

func NewPagoService(store repository.Store, caja CajaService) PagoService {
	return &pagoService{store: store, caja: caja}
}

func (s *pagoService) Registrar(ctx context.Context, req dto.RegistrarPagoRequest) (*model.Pago, error) {
	switch strings.ToLower(strings.TrimSpace(req.Tipo)) {
	case "", model.PagoCuota:
		return s.RegistrarCuota(ctx, req)
	case model.PagoPaseDiario:
		return s.RegistrarPaseDiario(ctx, req)
	}
	return nil, fmt.Errorf("%w: tipo de pago %q no soportado (cuota o pase_diario)", ErrValidacion, req.Tipo)
}

// ── RegistrarCuota ────────────────────────────────────────────────────────────
// One cuota per DNI per day. The lookup answers the common case; the partial
// unique index on (socio_dni, fecha) settles concurrent submissions.

func (s *pagoService) RegistrarCuota(ctx context.Context, req dto.RegistrarPagoRequest) (*model.Pago, error) {
	dni := strings.TrimSpace(req.SocioDNI)
	if dni == "" {
		return nil, fmt.Errorf("%w: el DNI del socio es obligatorio para una cuota", ErrValidacion)
	}
	req.SocioDNI = dni

	pago, err := s.nuevoPago(ctx, req, model.PagoCuota)
	if err != nil {
		return nil, err
	}

	existe, err := s.store.Pagos().ExisteCuota(ctx, dni, pago.Fecha)
	if err != nil {
		return nil, storeErr("buscar cuota", err)
	}
	if existe {
		return nil, cuotaDuplicada(dni, pago.Fecha)
	}
	return s.guardar(ctx, pago)
}

// ── RegistrarPaseDiario ──────────────────────────────────────────────────────
// Day visitors are not members: no duplicate guard.

func (s *pagoService) RegistrarPaseDiario(ctx context.Context, req dto.RegistrarPagoRequest) (*model.Pago, error) {
	pago, err := s.nuevoPago(ctx, req, model.PagoPaseDiario)
	if err != nil {
		return nil, err
	}
	return s.guardar(ctx, pago)
}

func (s *pagoService) nuevoPago(ctx context.Context, req dto.RegistrarPagoRequest, tipo string) (*model.Pago, error) {
	caja, err := s.caja.RequerirAbierta(ctx, req.CajaID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.SocioNombre) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", ErrValidacion)
	}
	if err := validarFecha(req.Fecha); err != nil {
		return nil, err
	}
	c, err := validarCobro(req.Monto, req.MetodoPago, req.MontoEfectivo, req.MontoElectronico)
	if err != nil {
		return nil, err
	}
	return &model.Pago{
		ID:               uuid.New(),
		SocioNombre:      strings.TrimSpace(req.SocioNombre),
		SocioDNI:         strings.TrimSpace(req.SocioDNI),
		Monto:            req.Monto,
		Fecha:            req.Fecha,
		MetodoPago:       c.metodo,
		MontoEfectivo:    c.efectivo,
		MontoElectronico: c.electronico,
		Tipo:             tipo,
		CajaID:           caja.ID,
	}, nil
}

func (s *pagoService) guardar(ctx context.Context, pago *model.Pago) (*model.Pago, error) {
	if err := s.store.Pagos().Create(ctx, pago); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, cuotaDuplicada(pago.SocioDNI, pago.Fecha)
		}
		return nil, storeErr("registrar pago", err)
	}
	log.Info().
		Str("pago_id", pago.ID.String()).
		Str("tipo", pago.Tipo).
		Str("metodo", pago.MetodoPago).
		Str("monto", pago.Monto.String()).
		Msg("pago registrado")
	return pago, nil
}

func cuotaDuplicada(dni, fecha string) error {
	return fmt.Errorf("%w: el socio %s ya pago la cuota del %s", ErrPagoDuplicado, dni, fecha)
}

func (s *pagoService) Listar(ctx context.Context, f dto.MovimientosFilter) ([]model.Pago, error) {
	filtro, err := filtroDesde(f)
	if err != nil {
		return nil, err
	}
	pagos, err := s.store.Pagos().List(ctx, filtro)
	if err != nil {
		return nil, storeErr("listar pagos", err)
	}
	return pagos, nil
}

// filtroDesde turns the query-string filter into a repository filter.
func filtroDesde(f dto.MovimientosFilter) (repository.Filtro, error) {
	filtro := repository.Filtro{Fecha: f.Fecha, Desde: f.Desde, Hasta: f.Hasta}
	if f.CajaID != "" {
		id, err := parseID(f.CajaID)
		if err != nil {
			return filtro, err
		}
		filtro.CajaID = id
	}
	if filtro.Desde != "" && filtro.Hasta != "" && filtro.Desde > filtro.Hasta {
		return filtro, fmt.Errorf("%w: desde (%s) es posterior a hasta (%s)", ErrValidacion, f.Desde, f.Hasta)
	}
	return filtro, nil
}
