package infra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gympos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func cierreDePrueba() *model.CierreCaja {
	informado := decimal.NewFromInt(30000)
	desvio := decimal.NewFromInt(-4000)
	pct := decimal.RequireFromString("-11.76")
	clasif := "critico"
	obs := "Faltante en efectivo, revisar con el turno tarde."
	return &model.CierreCaja{
		ID:                    uuid.New(),
		CajaID:                uuid.New(),
		Fecha:                 "2024-05-01",
		Tipo:                  model.CierreCompleto,
		TotalCuotas:           decimal.NewFromInt(32000),
		TotalBebidas:          decimal.NewFromInt(2000),
		TotalGastos:           decimal.NewFromInt(1500),
		TotalGeneral:          decimal.NewFromInt(34000),
		TotalNeto:             decimal.NewFromInt(32500),
		Efectivo:              decimal.NewFromInt(34000),
		NetoEfectivo:          decimal.NewFromInt(32500),
		CantidadPagos:         1,
		CantidadVentasBebidas: 1,
		CantidadGastos:        1,
		CantidadSociosNuevos:  1,
		TotalInformado:        &informado,
		Desvio:                &desvio,
		DesvioPct:             &pct,
		ClasificacionDesvio:   &clasif,
		Observaciones:         &obs,
		CreatedAt:             time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC),
		Detalle: datatypes.NewJSONType(model.DetalleCierre{
			Pagos:         []model.PagoDetalle{{Pago: model.Pago{SocioNombre: "Ana Pérez", MetodoPago: "efectivo", Monto: decimal.NewFromInt(32000)}, SocioActividad: "crossfit"}},
			VentasBebidas: []model.VentaBebida{{Nombre: "Agua", Cantidad: 2, PrecioTotal: decimal.NewFromInt(2000)}},
			Gastos:        []model.Gasto{{Descripcion: "Artículos de limpieza", MetodoPago: "efectivo", Monto: decimal.NewFromInt(1500)}},
			SociosNuevos:  []model.SocioDetalle{{Nombre: "Ana Pérez", DNI: "11111111", Actividad: "crossfit"}},
		}),
	}
}

func TestGenerateCierrePDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cierres")
	c := cierreDePrueba()

	path, err := GenerateCierrePDF(c, "Gimnasio Central", dir)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "cierre_2024-05-01_"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))

	head := make([]byte, 5)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.Read(head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(head))
}

func TestGenerateCierrePDF_CierreVacio(t *testing.T) {
	c := &model.CierreCaja{ID: uuid.New(), Fecha: "2024-05-02", Tipo: model.CierreParcial}

	_, err := GenerateCierrePDF(c, "Gimnasio", t.TempDir())

	assert.NoError(t, err)
}

func TestNewCajaCerradaEvent(t *testing.T) {
	c := cierreDePrueba()

	ev := NewCajaCerradaEvent(c)

	assert.Equal(t, c.ID.String(), ev.CierreID)
	assert.Equal(t, "34000.00", ev.TotalGeneral)
	assert.Equal(t, "32500.00", ev.NetoEfectivo)
	assert.Equal(t, "0.00", ev.NetoElectronico)
	assert.Equal(t, "critico", ev.Clasificacion)
	assert.Equal(t, "2024-05-01T22:00:00Z", ev.CerradaAt)
}
