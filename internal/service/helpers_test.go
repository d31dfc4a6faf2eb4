package service_test

import (
	"context"
	"sync"
	"testing"

	"gympos/internal/dto"
	"gympos/internal/model"
	"gympos/internal/repository/memory"
	"gympos/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ── Test environment over the in-memory store ───────────────────────────────

type entorno struct {
	store    *memory.Store
	caja     service.CajaService
	pagos    service.PagoService
	bebidas  service.BebidaService
	gastos   service.GastoService
	socios   service.SocioService
	cierres  service.CierreService
	reportes service.ReporteService
	notifier *notifierFake
	cache    *cacheFake
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	store := memory.New()
	caja := service.NewCajaService(store)
	notifier := &notifierFake{}
	cache := &cacheFake{}
	return &entorno{
		store:    store,
		caja:     caja,
		pagos:    service.NewPagoService(store, caja),
		bebidas:  service.NewBebidaService(store, caja, cache),
		gastos:   service.NewGastoService(store, caja),
		socios:   service.NewSocioService(store),
		cierres:  service.NewCierreService(store, caja, notifier),
		reportes: service.NewReporteService(store),
		notifier: notifier,
		cache:    cache,
	}
}

func (e *entorno) abrir(t *testing.T, fecha string) *model.Caja {
	t.Helper()
	c, err := e.caja.Abrir(context.Background(), dto.AbrirCajaRequest{Fecha: fecha})
	require.NoError(t, err)
	return c
}

func (e *entorno) bebida(t *testing.T, nombre string, precio int64, stock int) *model.Bebida {
	t.Helper()
	b, err := e.bebidas.Crear(context.Background(), dto.CrearBebidaRequest{
		Nombre: nombre, Precio: decimal.NewFromInt(precio), Stock: stock,
	})
	require.NoError(t, err)
	return b
}

func (e *entorno) cuota(t *testing.T, dni string, monto int64, fecha string) *model.Pago {
	t.Helper()
	p, err := e.pagos.RegistrarCuota(context.Background(), dto.RegistrarPagoRequest{
		SocioNombre: "Socio " + dni, SocioDNI: dni, Monto: decimal.NewFromInt(monto),
		Fecha: fecha, MetodoPago: "Efectivo",
	})
	require.NoError(t, err)
	return p
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Fakes ────────────────────────────────────────────────────────────────────

type notifierFake struct {
	mu      sync.Mutex
	cierres []*model.CierreCaja
	err     error
}

func (n *notifierFake) NotificarCierre(_ context.Context, c *model.CierreCaja) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cierres = append(n.cierres, c)
	return n.err
}

func (n *notifierFake) llamadas() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.cierres)
}

type cacheFake struct {
	mu          sync.Mutex
	bebidas     []model.Bebida
	cargado     bool
	hits        int
	invalidadas int
}

func (c *cacheFake) Get(context.Context) ([]model.Bebida, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cargado {
		return nil, false
	}
	c.hits++
	return c.bebidas, true
}

func (c *cacheFake) Set(_ context.Context, b []model.Bebida) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bebidas, c.cargado = b, true
}

func (c *cacheFake) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bebidas, c.cargado = nil, false
	c.invalidadas++
}
