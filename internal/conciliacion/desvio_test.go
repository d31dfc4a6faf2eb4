package conciliacion_test

import (
	"testing"

	"gympos/internal/conciliacion"

	"github.com/stretchr/testify/assert"
)

func TestCalcularDesvio(t *testing.T) {
	tests := []struct {
		name          string
		informado     string
		calculado     string
		monto         string
		pct           string
		clasificacion string
	}{
		{"exacto", "34000", "34000", "0", "0", conciliacion.DesvioNormal},
		{"faltante leve", "6400", "6500", "-100", "-1.54", conciliacion.DesvioAdvertencia},
		{"sobrante critico", "11000", "10000", "1000", "10", conciliacion.DesvioCritico},
		{"nada calculado", "500", "0", "500", "100", conciliacion.DesvioCritico},
		{"ambos cero", "0", "0", "0", "0", conciliacion.DesvioNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conciliacion.CalcularDesvio(d(tt.informado), d(tt.calculado))
			assertDec(t, tt.monto, got.Monto)
			assertDec(t, tt.pct, got.Porcentaje)
			assert.Equal(t, tt.clasificacion, got.Clasificacion)
		})
	}
}

func TestClasificarDesvio(t *testing.T) {
	assert.Equal(t, conciliacion.DesvioNormal, conciliacion.ClasificarDesvio(d("1")))
	assert.Equal(t, conciliacion.DesvioNormal, conciliacion.ClasificarDesvio(d("-0.5")))
	assert.Equal(t, conciliacion.DesvioAdvertencia, conciliacion.ClasificarDesvio(d("5")))
	assert.Equal(t, conciliacion.DesvioCritico, conciliacion.ClasificarDesvio(d("-5.01")))
}
