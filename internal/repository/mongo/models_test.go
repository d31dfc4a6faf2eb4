package mongo

import (
	"testing"
	"time"

	"gympos/internal/model"
	"gympos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/datatypes"
)

func TestDecimalRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "32000", "1500.50", "-100.25", "0.01"} {
		d := decimal.RequireFromString(s)
		assert.True(t, d.Equal(fromDec(dec(d))), s)
	}
}

func TestCierreDocRoundTrip(t *testing.T) {
	cajaID := uuid.New()
	informado := decimal.NewFromInt(34000)
	clasif := "normal"
	c := &model.CierreCaja{
		ID:                  uuid.New(),
		CajaID:              cajaID,
		Fecha:               "2024-05-01",
		Tipo:                model.CierreCompleto,
		TotalCuotas:         decimal.NewFromInt(32000),
		TotalBebidas:        decimal.NewFromInt(2000),
		TotalGeneral:        decimal.NewFromInt(34000),
		TotalNeto:           decimal.NewFromInt(34000),
		Efectivo:            decimal.NewFromInt(34000),
		CantidadPagos:       1,
		TotalInformado:      &informado,
		ClasificacionDesvio: &clasif,
		Detalle: datatypes.NewJSONType(model.DetalleCierre{
			Pagos: []model.PagoDetalle{{
				Pago: model.Pago{ID: uuid.New(), SocioDNI: "11111111", Monto: decimal.RequireFromString("32000.00"),
					MetodoPago: model.MetodoEfectivo, Tipo: model.PagoCuota, CajaID: cajaID},
				SocioActividad: "musculacion",
			}},
			VentasBebidas: []model.VentaBebida{{Nombre: "Agua", Cantidad: 2, PrecioTotal: decimal.NewFromInt(2000)}},
		}),
		CreatedAt: time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC),
	}

	m, err := toCierreDoc(c)
	require.NoError(t, err)

	// through the wire format and back
	raw, err := bson.Marshal(m)
	require.NoError(t, err)
	var decoded cierreDoc
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	got, err := fromCierreDoc(&decoded)
	require.NoError(t, err)

	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, cajaID, got.CajaID)
	assert.True(t, got.TotalGeneral.Equal(c.TotalGeneral))
	require.NotNil(t, got.TotalInformado)
	assert.True(t, got.TotalInformado.Equal(informado))
	assert.Nil(t, got.Desvio)
	assert.Equal(t, "normal", *got.ClasificacionDesvio)

	det := got.Detalle.Data()
	require.Len(t, det.Pagos, 1)
	assert.Equal(t, "musculacion", det.Pagos[0].SocioActividad)
	assert.True(t, det.Pagos[0].Monto.Equal(decimal.NewFromInt(32000)))
	require.Len(t, det.VentasBebidas, 1)
	assert.Equal(t, 2, det.VentasBebidas[0].Cantidad)
}

func TestFiltroBSON(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, bson.M{"caja_id": id.String()}, filtroBSON(repository.Filtro{CajaID: id, Fecha: "2024-05-01"}))
	assert.Equal(t, bson.M{"fecha": "2024-05-01"}, filtroBSON(repository.Filtro{Fecha: "2024-05-01"}))
	assert.Equal(t, bson.M{"fecha": bson.M{"$gte": "2024-05-01", "$lte": "2024-05-31"}},
		filtroBSON(repository.Filtro{Desde: "2024-05-01", Hasta: "2024-05-31"}))
	assert.Equal(t, bson.M{}, filtroBSON(repository.Filtro{}))
}

func TestNombreClave(t *testing.T) {
	assert.Equal(t, "coca cola", nombreClave("  Coca Cola "))
}
