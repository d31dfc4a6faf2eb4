// Package memory is an in-process Store used by tests and by STORE_DRIVER=memory.
// A single mutex guards all collections, which gives the same uniqueness and
// conditional-decrement guarantees the database backends get from their indexes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gympos/internal/model"
	"gympos/internal/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	cajas   map[uuid.UUID]model.Caja
	cierres []model.CierreCaja
	pagos   []model.Pago
	bebidas map[uuid.UUID]model.Bebida
	ventas  []model.VentaBebida
	gastos  []model.Gasto
	socios  []model.Socio
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		cajas:   make(map[uuid.UUID]model.Caja),
		bebidas: make(map[uuid.UUID]model.Bebida),
	}
}

func (s *Store) Cajas() repository.CajaRepository         { return cajaRepo{s} }
func (s *Store) Cierres() repository.CierreRepository     { return cierreRepo{s} }
func (s *Store) Pagos() repository.PagoRepository         { return pagoRepo{s} }
func (s *Store) Bebidas() repository.BebidaRepository     { return bebidaRepo{s} }
func (s *Store) Ventas() repository.VentaBebidaRepository { return ventaRepo{s} }
func (s *Store) Gastos() repository.GastoRepository       { return gastoRepo{s} }
func (s *Store) Socios() repository.SocioRepository       { return socioRepo{s} }
func (s *Store) Ping(context.Context) error               { return nil }

// WithinTx runs fn against the store itself; there is no rollback.
func (s *Store) WithinTx(_ context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func ensureTime(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// ── cajas ────────────────────────────────────────────────────────────────────

type cajaRepo struct{ s *Store }

func (r cajaRepo) Create(_ context.Context, c *model.Caja) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.Estado == "" {
		c.Estado = model.CajaAbierta
	}
	if c.Estado == model.CajaAbierta {
		for _, existing := range r.s.cajas {
			if existing.Estado == model.CajaAbierta {
				return repository.ErrDuplicate
			}
		}
	}
	ensureID(&c.ID)
	ensureTime(&c.OpenedAt)
	r.s.cajas[c.ID] = *c
	return nil
}

func (r cajaRepo) FindAbierta(context.Context) (*model.Caja, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.cajas {
		if c.Estado == model.CajaAbierta {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r cajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.cajas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r cajaRepo) Cerrar(_ context.Context, id uuid.UUID, closedAt time.Time, t model.TotalesCaja) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cajas[id]
	if !ok || c.Estado != model.CajaAbierta {
		return repository.ErrNotFound
	}
	c.Estado = model.CajaCerrada
	c.ClosedAt = &closedAt
	c.TotalEfectivo = t.TotalEfectivo
	c.TotalElectronico = t.TotalElectronico
	c.TotalGeneral = t.TotalGeneral
	c.CantidadPagos = t.CantidadPagos
	c.CantidadVentasBebidas = t.CantidadVentasBebidas
	c.Observaciones = t.Observaciones
	r.s.cajas[id] = c
	return nil
}

// ── cierres ──────────────────────────────────────────────────────────────────

type cierreRepo struct{ s *Store }

func (r cierreRepo) Create(_ context.Context, c *model.CierreCaja) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.Tipo == model.CierreCompleto {
		for _, existente := range r.s.cierres {
			if existente.CajaID == c.CajaID && existente.Tipo == model.CierreCompleto {
				return repository.ErrDuplicate
			}
		}
	}
	ensureID(&c.ID)
	ensureTime(&c.CreatedAt)
	r.s.cierres = append(r.s.cierres, *c)
	return nil
}

func (r cierreRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CierreCaja, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.cierres {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r cierreRepo) List(context.Context) ([]model.CierreCaja, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.CierreCaja, 0, len(r.s.cierres))
	for i := len(r.s.cierres) - 1; i >= 0; i-- {
		out = append(out, r.s.cierres[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ── pagos ────────────────────────────────────────────────────────────────────

type pagoRepo struct{ s *Store }

func (r pagoRepo) Create(_ context.Context, p *model.Pago) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.Tipo == model.PagoCuota && r.s.existeCuota(p.SocioDNI, p.Fecha) {
		return repository.ErrDuplicate
	}
	ensureID(&p.ID)
	ensureTime(&p.CreatedAt)
	r.s.pagos = append(r.s.pagos, *p)
	return nil
}

func (r pagoRepo) ExisteCuota(_ context.Context, dni, fecha string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.existeCuota(dni, fecha), nil
}

func (s *Store) existeCuota(dni, fecha string) bool {
	for _, p := range s.pagos {
		if p.Tipo == model.PagoCuota && p.SocioDNI == dni && p.Fecha == fecha {
			return true
		}
	}
	return false
}

func (r pagoRepo) List(_ context.Context, f repository.Filtro) ([]model.Pago, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Pago, 0)
	for _, p := range r.s.pagos {
		if f.Incluye(p.CajaID, p.Fecha) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── bebidas ──────────────────────────────────────────────────────────────────

type bebidaRepo struct{ s *Store }

func (s *Store) nombreTomado(nombre string, excepto uuid.UUID) bool {
	for id, b := range s.bebidas {
		if id != excepto && strings.EqualFold(b.Nombre, nombre) {
			return true
		}
	}
	return false
}

func (r bebidaRepo) Create(_ context.Context, b *model.Bebida) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.nombreTomado(b.Nombre, uuid.Nil) {
		return repository.ErrDuplicate
	}
	ensureID(&b.ID)
	ensureTime(&b.CreatedAt)
	b.UpdatedAt = b.CreatedAt
	r.s.bebidas[b.ID] = *b
	return nil
}

func (r bebidaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bebida, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bebidas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r bebidaRepo) Update(_ context.Context, b *model.Bebida) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	actual, ok := r.s.bebidas[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.s.nombreTomado(b.Nombre, b.ID) {
		return repository.ErrDuplicate
	}
	actual.Nombre = b.Nombre
	actual.Precio = b.Precio
	actual.Categoria = b.Categoria
	actual.UpdatedAt = time.Now()
	r.s.bebidas[b.ID] = actual
	return nil
}

func (r bebidaRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bebidas[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Activo = activo
	b.UpdatedAt = time.Now()
	r.s.bebidas[id] = b
	return nil
}

func (r bebidaRepo) Reponer(_ context.Context, id uuid.UUID, cantidad int) (*model.Bebida, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bebidas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.Stock += cantidad
	b.UpdatedAt = time.Now()
	r.s.bebidas[id] = b
	return &b, nil
}

func (r bebidaRepo) Descontar(_ context.Context, id uuid.UUID, cantidad int) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bebidas[id]
	if !ok || !b.Activo {
		return 0, 0, repository.ErrNotFound
	}
	if b.Stock < cantidad {
		return 0, 0, repository.ErrStockInsuficiente
	}
	anterior := b.Stock
	b.Stock -= cantidad
	b.UpdatedAt = time.Now()
	r.s.bebidas[id] = b
	return anterior, b.Stock, nil
}

func (r bebidaRepo) List(_ context.Context, soloDisponibles bool) ([]model.Bebida, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Bebida, 0, len(r.s.bebidas))
	for _, b := range r.s.bebidas {
		if soloDisponibles && (!b.Activo || b.Stock <= 0) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

// ── ventas / gastos ──────────────────────────────────────────────────────────

type ventaRepo struct{ s *Store }

func (r ventaRepo) Create(_ context.Context, v *model.VentaBebida) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&v.ID)
	ensureTime(&v.CreatedAt)
	r.s.ventas = append(r.s.ventas, *v)
	return nil
}

func (r ventaRepo) List(_ context.Context, f repository.Filtro) ([]model.VentaBebida, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.VentaBebida, 0)
	for _, v := range r.s.ventas {
		if f.Incluye(v.CajaID, v.Fecha) {
			out = append(out, v)
		}
	}
	return out, nil
}

type gastoRepo struct{ s *Store }

func (r gastoRepo) Create(_ context.Context, g *model.Gasto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&g.ID)
	ensureTime(&g.CreatedAt)
	r.s.gastos = append(r.s.gastos, *g)
	return nil
}

func (r gastoRepo) List(_ context.Context, f repository.Filtro) ([]model.Gasto, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Gasto, 0)
	for _, g := range r.s.gastos {
		if f.Incluye(g.CajaID, g.Fecha) {
			out = append(out, g)
		}
	}
	return out, nil
}

// ── socios ───────────────────────────────────────────────────────────────────

type socioRepo struct{ s *Store }

func (r socioRepo) Create(_ context.Context, soc *model.Socio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.socios {
		if existing.DNI == soc.DNI {
			return repository.ErrDuplicate
		}
	}
	ensureID(&soc.ID)
	ensureTime(&soc.FechaAlta)
	r.s.socios = append(r.s.socios, *soc)
	return nil
}

func (r socioRepo) FindByDNIs(_ context.Context, dnis []string) ([]model.Socio, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Socio, 0)
	for _, soc := range r.s.socios {
		for _, dni := range dnis {
			if soc.DNI == dni {
				out = append(out, soc)
				break
			}
		}
	}
	return out, nil
}

func (r socioRepo) List(_ context.Context, desde, hasta time.Time) ([]model.Socio, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Socio, 0)
	for _, soc := range r.s.socios {
		if !desde.IsZero() && soc.FechaAlta.Before(desde) {
			continue
		}
		if !hasta.IsZero() && soc.FechaAlta.After(hasta) {
			continue
		}
		out = append(out, soc)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FechaAlta.Before(out[j].FechaAlta) })
	return out, nil
}
