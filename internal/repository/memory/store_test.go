package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"gympos/internal/model"
	"gympos/internal/repository"
	"gympos/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCajas_SoloUnaAbiertaBajoConcurrencia(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	var ok, dup int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Cajas().Create(ctx, &model.Caja{Fecha: "2024-05-01"})
			switch err {
			case nil:
				atomic.AddInt32(&ok, 1)
			case repository.ErrDuplicate:
				atomic.AddInt32(&dup, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(19), dup)
}

func TestCajas_CerrarSoloUnaVez(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	c := &model.Caja{Fecha: "2024-05-01"}
	require.NoError(t, s.Cajas().Create(ctx, c))

	require.NoError(t, s.Cajas().Cerrar(ctx, c.ID, c.OpenedAt, model.TotalesCaja{TotalGeneral: decimal.NewFromInt(10)}))
	assert.ErrorIs(t, s.Cajas().Cerrar(ctx, c.ID, c.OpenedAt, model.TotalesCaja{}), repository.ErrNotFound)

	_, err := s.Cajas().FindAbierta(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// a new register can be opened once the previous one is closed
	require.NoError(t, s.Cajas().Create(ctx, &model.Caja{Fecha: "2024-05-02"}))
}

func TestPagos_CuotaDuplicadaPorDia(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	cuota := func(fecha string) *model.Pago {
		return &model.Pago{SocioDNI: "11111111", Fecha: fecha, Tipo: model.PagoCuota, Monto: decimal.NewFromInt(1)}
	}

	require.NoError(t, s.Pagos().Create(ctx, cuota("2024-05-01")))
	assert.ErrorIs(t, s.Pagos().Create(ctx, cuota("2024-05-01")), repository.ErrDuplicate)
	assert.NoError(t, s.Pagos().Create(ctx, cuota("2024-05-02")))

	pase := &model.Pago{SocioDNI: "11111111", Fecha: "2024-05-01", Tipo: model.PagoPaseDiario}
	assert.NoError(t, s.Pagos().Create(ctx, pase))

	existe, err := s.Pagos().ExisteCuota(ctx, "11111111", "2024-05-01")
	require.NoError(t, err)
	assert.True(t, existe)
}

func TestBebidas_DescontarConcurrente(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	b := &model.Bebida{Nombre: "Agua", Precio: decimal.NewFromInt(1000), Stock: 10, Activo: true}
	require.NoError(t, s.Bebidas().Create(ctx, b))

	var vendidas, rechazadas int32
	var wg sync.WaitGroup
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.Bebidas().Descontar(ctx, b.ID, 1)
			if err == nil {
				atomic.AddInt32(&vendidas, 1)
			} else if err == repository.ErrStockInsuficiente {
				atomic.AddInt32(&rechazadas, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), vendidas)
	assert.Equal(t, int32(5), rechazadas)
	got, err := s.Bebidas().FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestBebidas_DescontarInactiva(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	b := &model.Bebida{Nombre: "Gatorade", Stock: 3, Activo: true}
	require.NoError(t, s.Bebidas().Create(ctx, b))
	require.NoError(t, s.Bebidas().SetActivo(ctx, b.ID, false))

	_, _, err := s.Bebidas().Descontar(ctx, b.ID, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, _, err = s.Bebidas().Descontar(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBebidas_NombreUnicoSinMayusculas(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Bebidas().Create(ctx, &model.Bebida{Nombre: "Coca Cola", Activo: true}))
	assert.ErrorIs(t, s.Bebidas().Create(ctx, &model.Bebida{Nombre: "coca cola"}), repository.ErrDuplicate)

	otra := &model.Bebida{Nombre: "Sprite", Activo: true}
	require.NoError(t, s.Bebidas().Create(ctx, otra))
	otra.Nombre = "COCA COLA"
	assert.ErrorIs(t, s.Bebidas().Update(ctx, otra), repository.ErrDuplicate)
}

func TestFiltro(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	caja := uuid.New()
	for _, g := range []model.Gasto{
		{Fecha: "2024-05-01", CajaID: caja},
		{Fecha: "2024-05-02", CajaID: caja},
		{Fecha: "2024-05-03", CajaID: uuid.New()},
	} {
		g := g
		require.NoError(t, s.Gastos().Create(ctx, &g))
	}

	porCaja, _ := s.Gastos().List(ctx, repository.PorCaja(caja))
	assert.Len(t, porCaja, 2)

	porFecha, _ := s.Gastos().List(ctx, repository.Filtro{Fecha: "2024-05-03"})
	assert.Len(t, porFecha, 1)

	rango, _ := s.Gastos().List(ctx, repository.Filtro{Desde: "2024-05-02", Hasta: "2024-05-03"})
	assert.Len(t, rango, 2)

	todos, _ := s.Gastos().List(ctx, repository.Filtro{})
	assert.Len(t, todos, 3)
}

func TestCierres_UnSoloCompletoPorCaja(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	caja := uuid.New()

	require.NoError(t, s.Cierres().Create(ctx, &model.CierreCaja{CajaID: caja, Tipo: model.CierreParcial}))
	require.NoError(t, s.Cierres().Create(ctx, &model.CierreCaja{CajaID: caja, Tipo: model.CierreParcial}))
	require.NoError(t, s.Cierres().Create(ctx, &model.CierreCaja{CajaID: caja, Tipo: model.CierreCompleto}))
	assert.ErrorIs(t, s.Cierres().Create(ctx, &model.CierreCaja{CajaID: caja, Tipo: model.CierreCompleto}), repository.ErrDuplicate)

	// another register closes independently
	assert.NoError(t, s.Cierres().Create(ctx, &model.CierreCaja{CajaID: uuid.New(), Tipo: model.CierreCompleto}))

	cierres, err := s.Cierres().List(ctx)
	require.NoError(t, err)
	assert.Len(t, cierres, 4)
}

func TestListas_VaciasNoSonNil(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	pagos, err := s.Pagos().List(ctx, repository.Filtro{Fecha: "2024-05-01"})
	require.NoError(t, err)
	assert.NotNil(t, pagos)
	assert.Empty(t, pagos)

	ventas, err := s.Ventas().List(ctx, repository.Filtro{})
	require.NoError(t, err)
	assert.NotNil(t, ventas)

	gastos, err := s.Gastos().List(ctx, repository.Filtro{})
	require.NoError(t, err)
	assert.NotNil(t, gastos)
}
