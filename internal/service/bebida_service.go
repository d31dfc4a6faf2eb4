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
	"github.com/shopspring/decimal"
)

// CatalogoCache caches the customer-facing drink list. Every stock or catalog
// change invalidates it.
type CatalogoCache interface {
	Get(ctx context.Context) ([]model.Bebida, bool)
	Set(ctx context.Context, bebidas []model.Bebida)
	Invalidate(ctx context.Context)
}

type BebidaService interface {
	RegistrarVenta(ctx context.Context, req dto.VentaBebidaRequest) (*dto.VentaBebidaResponse, error)
	ListarVentas(ctx context.Context, f dto.MovimientosFilter) ([]model.VentaBebida, error)

	Crear(ctx context.Context, req dto.CrearBebidaRequest) (*model.Bebida, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarBebidaRequest) (*model.Bebida, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	Reponer(ctx context.Context, id uuid.UUID, req dto.ReponerStockRequest) (*model.Bebida, error)
	// ListarDisponibles is the customer view: active drinks with stock.
	ListarDisponibles(ctx context.Context) ([]model.Bebida, error)
	// ListarTodas is the admin view, inactive and out-of-stock included.
	ListarTodas(ctx context.Context) ([]model.Bebida, error)
}

type bebidaService struct {
	store repository.Store
	caja  CajaService
	cache CatalogoCache
}

// NewBebidaService wires the drink service. cache may be nil.
func NewBebidaService(store repository.Store, caja CajaService, cache CatalogoCache) BebidaService {
	return &bebidaService{store: store, caja: caja, cache: cache}
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
//   1. Require the open register
//   2. Load the drink and price the sale (cantidad × precio, never the caller's total)
//   3. In one store transaction: conditional stock decrement + insert the sale
//      (a failed insert hands the units back for backends without transactions)

func (s *bebidaService) RegistrarVenta(ctx context.Context, req dto.VentaBebidaRequest) (*dto.VentaBebidaResponse, error) {
	caja, err := s.caja.RequerirAbierta(ctx, req.CajaID)
	if err != nil {
		return nil, err
	}
	if req.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", ErrValidacion)
	}
	bebidaID, err := parseID(req.BebidaID)
	if err != nil {
		return nil, err
	}
	fecha := req.Fecha
	if fecha == "" {
		fecha = hoy()
	}
	if err := validarFecha(fecha); err != nil {
		return nil, err
	}

	bebida, err := s.buscar(ctx, bebidaID)
	if err != nil {
		return nil, err
	}
	if !bebida.Activo {
		return nil, fmt.Errorf("%w: la bebida %q no esta disponible", ErrNoEncontrado, bebida.Nombre)
	}
	if req.Cantidad > bebida.Stock {
		return nil, stockInsuficiente(bebida.Nombre, bebida.Stock)
	}

	total := bebida.Precio.Mul(decimal.NewFromInt(int64(req.Cantidad)))
	if req.PrecioTotal != nil && !req.PrecioTotal.Equal(total) {
		log.Warn().
			Str("bebida_id", bebida.ID.String()).
			Str("informado", req.PrecioTotal.String()).
			Str("calculado", total.String()).
			Msg("precio total informado no coincide; se cobra el calculado")
	}
	c, err := validarCobro(total, req.MetodoPago, req.MontoEfectivo, req.MontoElectronico)
	if err != nil {
		return nil, err
	}

	venta := &model.VentaBebida{
		ID:               uuid.New(),
		BebidaID:         bebida.ID,
		Nombre:           bebida.Nombre,
		Cantidad:         req.Cantidad,
		PrecioUnitario:   bebida.Precio,
		PrecioTotal:      total,
		MetodoPago:       c.metodo,
		MontoEfectivo:    c.efectivo,
		MontoElectronico: c.electronico,
		Fecha:            fecha,
		CajaID:           caja.ID,
	}
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		anterior, nuevo, err := tx.Bebidas().Descontar(ctx, bebida.ID, req.Cantidad)
		if err != nil {
			return err
		}
		venta.StockAnterior, venta.StockNuevo = anterior, nuevo
		if err := tx.Ventas().Create(ctx, venta); err != nil {
			// without a transaction the decrement is already applied; give the units back
			if _, rerr := tx.Bebidas().Reponer(ctx, bebida.ID, req.Cantidad); rerr != nil {
				log.Warn().Err(rerr).
					Str("bebida_id", bebida.ID.String()).
					Int("cantidad", req.Cantidad).
					Msg("no se pudo devolver el stock de una venta fallida")
			}
			return err
		}
		return nil
	})
	switch {
	case errors.Is(err, repository.ErrStockInsuficiente):
		// someone else sold the last units between the read and the decrement
		actual, _ := s.store.Bebidas().FindByID(ctx, bebida.ID)
		disponible := 0
		if actual != nil {
			disponible = actual.Stock
		}
		return nil, stockInsuficiente(bebida.Nombre, disponible)
	case errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("%w: la bebida %q no esta disponible", ErrNoEncontrado, bebida.Nombre)
	case err != nil:
		return nil, storeErr("registrar venta", err)
	}

	s.invalidar(ctx)
	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("bebida", venta.Nombre).
		Int("cantidad", venta.Cantidad).
		Int("stock_restante", venta.StockNuevo).
		Msg("venta de bebida registrada")
	return &dto.VentaBebidaResponse{Venta: *venta, StockRestante: venta.StockNuevo}, nil
}

func stockInsuficiente(nombre string, disponible int) error {
	return fmt.Errorf("%w: quedan %d unidades de %q", ErrStockInsuficiente, disponible, nombre)
}

func (s *bebidaService) ListarVentas(ctx context.Context, f dto.MovimientosFilter) ([]model.VentaBebida, error) {
	filtro, err := filtroDesde(f)
	if err != nil {
		return nil, err
	}
	ventas, err := s.store.Ventas().List(ctx, filtro)
	if err != nil {
		return nil, storeErr("listar ventas", err)
	}
	return ventas, nil
}

// ── Catalogo ─────────────────────────────────────────────────────────────────

func (s *bebidaService) Crear(ctx context.Context, req dto.CrearBebidaRequest) (*model.Bebida, error) {
	b := &model.Bebida{
		ID:        uuid.New(),
		Nombre:    strings.TrimSpace(req.Nombre),
		Precio:    req.Precio,
		Stock:     req.Stock,
		Categoria: categoria(req.Categoria),
		Activo:    true,
	}
	if err := validarBebida(b.Nombre, b.Precio); err != nil {
		return nil, err
	}
	if b.Stock < 0 {
		return nil, fmt.Errorf("%w: el stock no puede ser negativo", ErrValidacion)
	}
	if err := s.store.Bebidas().Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ya existe una bebida llamada %q", ErrBebidaDuplicada, b.Nombre)
		}
		return nil, storeErr("crear bebida", err)
	}
	s.invalidar(ctx)
	return b, nil
}

func (s *bebidaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarBebidaRequest) (*model.Bebida, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if err := validarBebida(nombre, req.Precio); err != nil {
		return nil, err
	}
	b, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Nombre, b.Precio, b.Categoria = nombre, req.Precio, categoria(req.Categoria)

	if err := s.store.Bebidas().Update(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: ya existe una bebida llamada %q", ErrBebidaDuplicada, nombre)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: bebida %s", ErrNoEncontrado, id)
		}
		return nil, storeErr("actualizar bebida", err)
	}
	s.invalidar(ctx)
	return s.buscar(ctx, id)
}

func (s *bebidaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.setActivo(ctx, id, false)
}

func (s *bebidaService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.setActivo(ctx, id, true)
}

func (s *bebidaService) setActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	err := s.store.Bebidas().SetActivo(ctx, id, activo)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: bebida %s", ErrNoEncontrado, id)
	}
	if err != nil {
		return storeErr("cambiar estado de bebida", err)
	}
	s.invalidar(ctx)
	return nil
}

func (s *bebidaService) Reponer(ctx context.Context, id uuid.UUID, req dto.ReponerStockRequest) (*model.Bebida, error) {
	if req.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: la cantidad a reponer debe ser mayor a cero", ErrValidacion)
	}
	b, err := s.store.Bebidas().Reponer(ctx, id, req.Cantidad)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: bebida %s", ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, storeErr("reponer stock", err)
	}
	s.invalidar(ctx)
	log.Info().Str("bebida_id", id.String()).Int("cantidad", req.Cantidad).Int("stock", b.Stock).Msg("stock repuesto")
	return b, nil
}

func (s *bebidaService) ListarDisponibles(ctx context.Context) ([]model.Bebida, error) {
	if s.cache != nil {
		if bebidas, ok := s.cache.Get(ctx); ok {
			return bebidas, nil
		}
	}
	bebidas, err := s.store.Bebidas().List(ctx, true)
	if err != nil {
		return nil, storeErr("listar bebidas", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, bebidas)
	}
	return bebidas, nil
}

func (s *bebidaService) ListarTodas(ctx context.Context) ([]model.Bebida, error) {
	bebidas, err := s.store.Bebidas().List(ctx, false)
	if err != nil {
		return nil, storeErr("listar bebidas", err)
	}
	return bebidas, nil
}

func (s *bebidaService) buscar(ctx context.Context, id uuid.UUID) (*model.Bebida, error) {
	b, err := s.store.Bebidas().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: bebida %s", ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, storeErr("buscar bebida", err)
	}
	return b, nil
}

func (s *bebidaService) invalidar(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func validarBebida(nombre string, precio decimal.Decimal) error {
	if nombre == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", ErrValidacion)
	}
	if !precio.IsPositive() {
		return fmt.Errorf("%w: el precio debe ser mayor a cero", ErrValidacion)
	}
	return nil
}

func categoria(c string) string {
	if c = strings.TrimSpace(c); c == "" {
		return "general"
	}
	return c
}
