package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gympos/internal/conciliacion"
	"gympos/internal/dto"
	"gympos/internal/model"
	"gympos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type CajaService interface {
	Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*model.Caja, error)
	// Actual returns the open register, or nil when none is open.
	Actual(ctx context.Context) (*model.Caja, error)
	ObtenerResumen(ctx context.Context) (*dto.CajaActualResponse, error)
	// RequerirAbierta is called by the recorders before tagging a movement.
	// A non-empty cajaID must name the open register.
	RequerirAbierta(ctx context.Context, cajaID string) (*model.Caja, error)
	// Cerrar is only called by the close builder for a complete close; tx lets
	// it run inside the same store transaction as the snapshot insert.
	Cerrar(ctx context.Context, tx repository.Store, id uuid.UUID, t model.TotalesCaja) error
}

type cajaService struct {
	store repository.Store
}

func NewCajaService(store repository.Store) CajaService {
	return &cajaService{store: store}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// The lookup gives a friendly error; the unique index on open registers is what
// actually stops two concurrent opens.

func (s *cajaService) Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*model.Caja, error) {
	fecha := req.Fecha
	if fecha == "" {
		fecha = hoy()
	}
	if err := validarFecha(fecha); err != nil {
		return nil, err
	}

	if existing, err := s.Actual(ctx); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: la caja del %s sigue abierta", ErrCajaYaAbierta, existing.Fecha)
	}

	caja := &model.Caja{
		ID:               uuid.New(),
		Fecha:            fecha,
		Estado:           model.CajaAbierta,
		OpenedAt:         time.Now(),
		TotalEfectivo:    decimal.Zero,
		TotalElectronico: decimal.Zero,
		TotalGeneral:     decimal.Zero,
	}
	if err := s.store.Cajas().Create(ctx, caja); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: otra terminal abrio la caja", ErrCajaYaAbierta)
		}
		return nil, storeErr("abrir caja", err)
	}

	log.Info().Str("caja_id", caja.ID.String()).Str("fecha", fecha).Msg("caja abierta")
	return caja, nil
}

func (s *cajaService) Actual(ctx context.Context) (*model.Caja, error) {
	caja, err := s.store.Cajas().FindAbierta(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("buscar caja abierta", err)
	}
	return caja, nil
}

func (s *cajaService) RequerirAbierta(ctx context.Context, cajaID string) (*model.Caja, error) {
	caja, err := s.Actual(ctx)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, fmt.Errorf("%w: abra la caja primero", ErrCajaNoAbierta)
	}
	if cajaID != "" {
		id, err := parseID(cajaID)
		if err != nil {
			return nil, err
		}
		if id != caja.ID {
			return nil, fmt.Errorf("%w: la caja %s no es la caja abierta", ErrCajaNoAbierta, id)
		}
	}
	return caja, nil
}

// ── ObtenerResumen ───────────────────────────────────────────────────────────
// Running totals are computed on read from the register's records; the Caja row
// only stores totals once it is closed.

func (s *cajaService) ObtenerResumen(ctx context.Context) (*dto.CajaActualResponse, error) {
	caja, err := s.Actual(ctx)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return &dto.CajaActualResponse{Abierta: false}, nil
	}

	pagos, ventas, gastos, err := movimientosDeCaja(ctx, s.store, caja.ID)
	if err != nil {
		return nil, err
	}
	res := conciliacion.Resumir(pagos, ventas, gastos)
	return &dto.CajaActualResponse{
		Abierta: true,
		Caja:    dto.NewCajaResponse(caja),
		Resumen: &res,
	}, nil
}

// ── Cerrar ───────────────────────────────────────────────────────────────────

func (s *cajaService) Cerrar(ctx context.Context, tx repository.Store, id uuid.UUID, t model.TotalesCaja) error {
	if tx == nil {
		tx = s.store
	}
	err := tx.Cajas().Cerrar(ctx, id, time.Now(), t)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: la caja %s no existe o ya fue cerrada", ErrNoEncontrado, id)
	}
	if err != nil {
		return storeErr("cerrar caja", err)
	}
	log.Info().
		Str("caja_id", id.String()).
		Str("total_general", t.TotalGeneral.String()).
		Msg("caja cerrada")
	return nil
}

// movimientosDeCaja loads everything tagged to a register.
func movimientosDeCaja(ctx context.Context, store repository.Store, cajaID uuid.UUID) ([]model.Pago, []model.VentaBebida, []model.Gasto, error) {
	f := repository.PorCaja(cajaID)
	pagos, err := store.Pagos().List(ctx, f)
	if err != nil {
		return nil, nil, nil, storeErr("listar pagos", err)
	}
	ventas, err := store.Ventas().List(ctx, f)
	if err != nil {
		return nil, nil, nil, storeErr("listar ventas", err)
	}
	gastos, err := store.Gastos().List(ctx, f)
	if err != nil {
		return nil, nil, nil, storeErr("listar gastos", err)
	}
	return pagos, ventas, gastos, nil
}
