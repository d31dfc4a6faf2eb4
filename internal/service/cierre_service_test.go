package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gympos/internal/dto"
	"gympos/internal/model"
	"gympos/internal/repository"
	"gympos/internal/repository/memory"
	"gympos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jornada opens a register and records one cuota of 32000 and two drinks of 1000,
// all in cash.
func jornada(t *testing.T, e *entorno) *model.Caja {
	t.Helper()
	c := e.abrir(t, "2024-05-01")
	e.cuota(t, "11111111", 32000, "2024-05-01")
	b := e.bebida(t, "Agua", 1000, 10)
	_, err := e.bebidas.RegistrarVenta(context.Background(), venta(b.ID, 2))
	require.NoError(t, err)
	return c
}

func totales(general int64) *dto.TotalesInformados {
	g := decimal.NewFromInt(general)
	return &dto.TotalesInformados{TotalGeneral: &g}
}

func TestCierreParcial_MantieneLaCajaAbierta(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	c := jornada(t, e)

	cierre, err := e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "parcial"})

	require.NoError(t, err)
	assert.Equal(t, model.CierreParcial, cierre.Tipo)
	assert.Equal(t, c.ID, cierre.CajaID)
	assert.Equal(t, "32000", cierre.TotalCuotas.String())
	assert.Equal(t, "2000", cierre.TotalBebidas.String())
	assert.Equal(t, "34000", cierre.TotalGeneral.String())
	assert.Nil(t, cierre.Desvio)

	actual, err := e.caja.Actual(ctx)
	require.NoError(t, err)
	require.NotNil(t, actual)
	assert.Equal(t, c.ID, actual.ID)
	assert.Zero(t, e.notifier.llamadas())

	// partial closes can be repeated
	_, err = e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "PARCIAL"})
	require.NoError(t, err)
	cierres, err := e.cierres.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, cierres, 2)
}

func TestCierreCompleto_CierraLaCaja(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	c := jornada(t, e)
	obs := "sin novedades"

	cierre, err := e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "completo", Totales: totales(34000), Observaciones: &obs})

	require.NoError(t, err)
	assert.Equal(t, 1, cierre.CantidadPagos)
	assert.Equal(t, 1, cierre.CantidadVentasBebidas)
	require.NotNil(t, cierre.Desvio)
	assert.True(t, cierre.Desvio.IsZero())
	assert.Equal(t, "normal", *cierre.ClasificacionDesvio)

	actual, err := e.caja.Actual(ctx)
	require.NoError(t, err)
	assert.Nil(t, actual)

	cerrada, err := e.store.Cajas().FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CajaCerrada, cerrada.Estado)
	assert.NotNil(t, cerrada.ClosedAt)
	assert.Equal(t, "34000", cerrada.TotalGeneral.String())
	assert.Equal(t, "34000", cerrada.TotalEfectivo.String())
	assert.True(t, cerrada.TotalElectronico.IsZero())
	assert.Equal(t, 1, cerrada.CantidadPagos)
	assert.Equal(t, &obs, cerrada.Observaciones)

	require.Equal(t, 1, e.notifier.llamadas())
	assert.Equal(t, cierre.ID, e.notifier.cierres[0].ID)

	// nothing left to close; a new register can be opened
	_, err = e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "completo"})
	assert.ErrorIs(t, err, service.ErrCajaNoAbierta)
	_, err = e.caja.Abrir(ctx, dto.AbrirCajaRequest{Fecha: "2024-05-02"})
	assert.NoError(t, err)
}

func TestCierre_Validaciones(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	_, err := e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "parcial"})
	assert.ErrorIs(t, err, service.ErrCajaNoAbierta)

	e.abrir(t, "2024-05-01")
	_, err = e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "semanal"})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestCierre_CajaVacia(t *testing.T) {
	e := nuevoEntorno(t)
	e.abrir(t, "2024-05-01")

	cierre, err := e.cierres.Cerrar(context.Background(), dto.CerrarCajaRequest{Tipo: "completo"})

	require.NoError(t, err)
	assert.True(t, cierre.TotalGeneral.IsZero())
	assert.Zero(t, cierre.CantidadPagos)
	det := cierre.Detalle.Data()
	assert.NotNil(t, det.Pagos)
	assert.NotNil(t, det.VentasBebidas)
	assert.NotNil(t, det.Gastos)
}

func TestCierre_RegistraDesvio(t *testing.T) {
	e := nuevoEntorno(t)
	jornada(t, e)

	cierre, err := e.cierres.Cerrar(context.Background(), dto.CerrarCajaRequest{Tipo: "parcial", Totales: totales(30000)})

	require.NoError(t, err)
	assert.Equal(t, "34000", cierre.TotalGeneral.String(), "the snapshot keeps the recomputed total")
	require.NotNil(t, cierre.TotalInformado)
	assert.Equal(t, "30000", cierre.TotalInformado.String())
	assert.Equal(t, "-4000", cierre.Desvio.String())
	assert.Equal(t, "-11.76", cierre.DesvioPct.String())
	assert.Equal(t, "critico", *cierre.ClasificacionDesvio)
}

func TestCierre_SinTotalGeneralNoClasifica(t *testing.T) {
	e := nuevoEntorno(t)
	jornada(t, e)

	cuotas := decimal.NewFromInt(32000)
	cierre, err := e.cierres.Cerrar(context.Background(), dto.CerrarCajaRequest{
		Tipo:    "parcial",
		Totales: &dto.TotalesInformados{TotalCuotas: &cuotas},
	})

	require.NoError(t, err)
	assert.Equal(t, "34000", cierre.TotalGeneral.String())
	assert.Nil(t, cierre.TotalInformado)
	assert.Nil(t, cierre.Desvio)
	assert.Nil(t, cierre.ClasificacionDesvio)
}

func TestCierre_NetosYMetodos(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	e.abrir(t, "2024-05-01")
	e.cuota(t, "11111111", 30000, "2024-05-01")

	mixto := pagoReq("22222222", 32000, "mixto")
	mixto.MontoEfectivo = decimal.NewFromInt(15000)
	mixto.MontoElectronico = decimal.NewFromInt(17000)
	_, err := e.pagos.Registrar(ctx, mixto)
	require.NoError(t, err)

	_, err = e.pagos.Registrar(ctx, pagoReq("33333333", 5000, "electronico"))
	require.NoError(t, err)

	_, err = e.gastos.RegistrarGasto(ctx, gastoReq(1500, "efectivo"))
	require.NoError(t, err)

	cierre, err := e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "parcial"})

	require.NoError(t, err)
	assert.Equal(t, "67000", cierre.TotalGeneral.String())
	assert.Equal(t, "1500", cierre.TotalGastos.String())
	assert.Equal(t, "65500", cierre.TotalNeto.String())
	assert.Equal(t, "30000", cierre.Efectivo.String())
	assert.Equal(t, "5000", cierre.Electronico.String())
	assert.Equal(t, "15000", cierre.MixtoEfectivo.String())
	assert.Equal(t, "17000", cierre.MixtoElectronico.String())
	assert.Equal(t, "43500", cierre.NetoEfectivo.String())
	assert.Equal(t, "22000", cierre.NetoElectronico.String())
	assert.Equal(t, 1, cierre.CantidadGastos)
}

func TestCierre_AgrupaPorCajaNoPorFecha(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	e.abrir(t, "2024-05-01")
	e.cuota(t, "11111111", 30000, "2024-05-01")
	_, err := e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "completo"})
	require.NoError(t, err)

	// same business date, new register
	e.abrir(t, "2024-05-01")
	e.cuota(t, "22222222", 20000, "2024-05-01")
	e.cuota(t, "33333333", 10000, "2024-04-30")

	cierre, err := e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "parcial"})

	require.NoError(t, err)
	assert.Equal(t, 2, cierre.CantidadPagos)
	assert.Equal(t, "30000", cierre.TotalCuotas.String())
}

func TestCierre_DetalleYSociosNuevos(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	antiguo := &model.Socio{ID: uuid.New(), Nombre: "Antiguo", DNI: "10000000", Actividad: "yoga", FechaAlta: time.Now().Add(-time.Hour)}
	require.NoError(t, e.store.Socios().Create(ctx, antiguo))

	e.abrir(t, "2024-05-01")
	_, err := e.socios.Crear(ctx, dto.CrearSocioRequest{Nombre: "Ana Perez", DNI: "11111111", Actividad: "crossfit"})
	require.NoError(t, err)
	e.cuota(t, "11111111", 32000, "2024-05-01")
	e.cuota(t, "10000000", 30000, "2024-05-01")

	paseReq := pagoReq("", 3000, "efectivo")
	_, err = e.pagos.RegistrarPaseDiario(ctx, paseReq)
	require.NoError(t, err)

	cierre, err := e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "parcial"})
	require.NoError(t, err)

	assert.Equal(t, 1, cierre.CantidadSociosNuevos)
	det := cierre.Detalle.Data()
	require.Len(t, det.SociosNuevos, 1)
	assert.Equal(t, "11111111", det.SociosNuevos[0].DNI)

	actividades := map[string]string{}
	for _, p := range det.Pagos {
		actividades[p.SocioDNI] = p.SocioActividad
	}
	assert.Equal(t, "crossfit", actividades["11111111"])
	assert.Equal(t, "yoga", actividades["10000000"])
	assert.Equal(t, "", actividades[""])
	assert.Len(t, det.Pagos, 3)
}

func TestCierre_ListarYObtener(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	jornada(t, e)

	primero, err := e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "parcial"})
	require.NoError(t, err)
	segundo, err := e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "completo"})
	require.NoError(t, err)

	cierres, err := e.cierres.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, cierres, 2)
	assert.Equal(t, segundo.ID, cierres[0].ID)
	assert.Equal(t, primero.ID, cierres[1].ID)

	got, err := e.cierres.Obtener(ctx, primero.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CierreParcial, got.Tipo)

	_, err = e.cierres.Obtener(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestCierre_FallaDelNotificadorNoDeshaceElCierre(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	jornada(t, e)
	e.notifier.err = errors.New("redis caido")

	_, err := e.cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "completo"})

	require.NoError(t, err)
	actual, err := e.caja.Actual(ctx)
	require.NoError(t, err)
	assert.Nil(t, actual)
}

// storeCajaRota fails every register transition. It has no transactions, like
// the mongo store, so it shows the order of the close writes.
type storeCajaRota struct{ *memory.Store }

func (s storeCajaRota) Cajas() repository.CajaRepository {
	return cajaRota{s.Store.Cajas()}
}

func (s storeCajaRota) WithinTx(_ context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

type cajaRota struct{ repository.CajaRepository }

func (cajaRota) Cerrar(context.Context, uuid.UUID, time.Time, model.TotalesCaja) error {
	return errors.New("conexion perdida")
}

func TestCierreCompleto_SnapshotAntesDeCerrar(t *testing.T) {
	ctx := context.Background()
	store := storeCajaRota{memory.New()}
	caja := service.NewCajaService(store)
	cierres := service.NewCierreService(store, caja, nil)

	_, err := caja.Abrir(ctx, dto.AbrirCajaRequest{Fecha: "2024-05-01"})
	require.NoError(t, err)

	_, err = cierres.Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "completo"})
	assert.ErrorIs(t, err, service.ErrStore)

	// the snapshot is there and the register is still open, so the close can be retried
	guardados, err := cierres.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, guardados, 1)
	actual, err := caja.Actual(ctx)
	require.NoError(t, err)
	assert.NotNil(t, actual)

	// once the store recovers the retry reuses the stored snapshot
	sana := service.NewCajaService(store.Store)
	reintento, err := service.NewCierreService(store.Store, sana, nil).
		Cerrar(ctx, dto.CerrarCajaRequest{Tipo: "completo"})
	require.NoError(t, err)
	assert.Equal(t, guardados[0].ID, reintento.ID)

	guardados, err = cierres.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, guardados, 1)
	actual, err = sana.Actual(ctx)
	require.NoError(t, err)
	assert.Nil(t, actual)
}
