package service_test

import (
	"context"
	"testing"

	"gympos/internal/dto"
	"gympos/internal/model"
	"gympos/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gastoReq(monto int64, metodo string) dto.RegistrarGastoRequest {
	return dto.RegistrarGastoRequest{
		Monto:         decimal.NewFromInt(monto),
		Descripcion:   "Articulos de limpieza",
		Fecha:         "2024-05-01",
		RegistradoPor: "recepcion",
		MetodoPago:    metodo,
	}
}

func TestRegistrarGasto(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	c := e.abrir(t, "2024-05-01")

	g, err := e.gastos.RegistrarGasto(ctx, gastoReq(1500, "Efectivo"))

	require.NoError(t, err)
	assert.Equal(t, c.ID, g.CajaID)
	assert.Equal(t, model.MetodoEfectivo, g.MetodoPago)
	assert.Equal(t, "recepcion", g.RegistradoPor)

	gastos, err := e.gastos.Listar(ctx, dto.MovimientosFilter{CajaID: c.ID.String()})
	require.NoError(t, err)
	assert.Len(t, gastos, 1)
}

func TestRegistrarGasto_Invalido(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	_, err := e.gastos.RegistrarGasto(ctx, gastoReq(1500, "efectivo"))
	assert.ErrorIs(t, err, service.ErrCajaNoAbierta)

	e.abrir(t, "2024-05-01")

	_, err = e.gastos.RegistrarGasto(ctx, gastoReq(0, "efectivo"))
	assert.ErrorIs(t, err, service.ErrValidacion)

	sinDesc := gastoReq(100, "efectivo")
	sinDesc.Descripcion = " "
	_, err = e.gastos.RegistrarGasto(ctx, sinDesc)
	assert.ErrorIs(t, err, service.ErrValidacion)

	_, err = e.gastos.RegistrarGasto(ctx, gastoReq(100, "tarjeta"))
	assert.ErrorIs(t, err, service.ErrValidacion)
}
