package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gympos/internal/config"
	"gympos/internal/model"
	"gympos/internal/repository/memory"
	"gympos/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notifierFake struct {
	mu      sync.Mutex
	cierres []*model.CierreCaja
}

func (n *notifierFake) NotificarCierre(_ context.Context, c *model.CierreCaja) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cierres = append(n.cierres, c)
	return nil
}

func setup(t *testing.T) (*gin.Engine, *notifierFake) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: "test", DrinksCacheTTL: time.Minute}
	notifier := &notifierFake{}
	return router.New(cfg, memory.New(), nil, notifier), notifier
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func doList(t *testing.T, r http.Handler, path string) []map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func hoy() string { return time.Now().Format("2006-01-02") }

func cuota(dni string, monto int) map[string]interface{} {
	return map[string]interface{}{
		"socio_nombre": "Ana Perez",
		"socio_dni":    dni,
		"monto":        monto,
		"fecha":        hoy(),
		"metodo_pago":  "efectivo",
	}
}

func TestHealth(t *testing.T) {
	r, _ := setup(t)
	status, body := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "connected", body["store"])
	assert.Equal(t, "disabled", body["redis"])
}

func TestRequestIDHeader(t *testing.T) {
	r, _ := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestAbrirCaja(t *testing.T) {
	r, _ := setup(t)

	status, body := do(t, r, http.MethodPost, "/register/open", nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, hoy(), body["fecha"])
	assert.Equal(t, "abierta", body["estado"])

	status, body = do(t, r, http.MethodPost, "/register/open", map[string]string{"fecha": hoy()})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "caja_abierta", body["code"])
}

func TestAbrirCaja_FechaInvalida(t *testing.T) {
	r, _ := setup(t)
	status, body := do(t, r, http.MethodPost, "/register/open", map[string]string{"fecha": "01/05/2024"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "validacion", body["code"])
}

func TestCajaActual_SinCaja(t *testing.T) {
	r, _ := setup(t)
	status, body := do(t, r, http.MethodGet, "/register/current", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["abierta"])
	assert.Nil(t, body["caja"])
}

func TestPago_SinCaja(t *testing.T) {
	r, _ := setup(t)
	status, body := do(t, r, http.MethodPost, "/payments", cuota("30111222", 32000))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "caja_cerrada", body["code"])
}

func TestPago_JSONInvalido(t *testing.T) {
	r, _ := setup(t)
	status, body := do(t, r, http.MethodPost, "/payments", `{"monto":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "json_invalido", body["code"])
}

func TestPago_Duplicado(t *testing.T) {
	r, _ := setup(t)
	status, _ := do(t, r, http.MethodPost, "/register/open", nil)
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, r, http.MethodPost, "/payments", cuota("30111222", 32000))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "cuota", body["tipo"])

	status, body = do(t, r, http.MethodPost, "/payments", cuota("30111222", 32000))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "pago_duplicado", body["code"])

	pagos := doList(t, r, "/payments?fecha="+hoy())
	assert.Len(t, pagos, 1)
}

func TestBebidas_Validacion(t *testing.T) {
	r, _ := setup(t)
	status, body := do(t, r, http.MethodPost, "/drinks", map[string]interface{}{"nombre": "A", "precio": 0})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "validacion", body["code"])
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "Nombre")
	assert.Contains(t, fields, "Precio")
}

func TestBebidas_NoEncontrada(t *testing.T) {
	r, _ := setup(t)

	status, body := do(t, r, http.MethodPatch, "/drinks/"+uuid.NewString()+"/stock", map[string]int{"cantidad": 5})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "no_encontrado", body["code"])

	status, body = do(t, r, http.MethodDelete, "/drinks/no-es-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validacion", body["code"])
}

func TestBebidas_Catalogo(t *testing.T) {
	r, _ := setup(t)

	status, body := do(t, r, http.MethodPost, "/drinks", map[string]interface{}{"nombre": "Agua", "precio": 1000, "stock": 0})
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)

	status, body = do(t, r, http.MethodPost, "/drinks", map[string]interface{}{"nombre": "agua", "precio": 900})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "bebida_duplicada", body["code"])

	// no stock: hidden from the front desk list
	assert.Empty(t, doList(t, r, "/drinks"))
	assert.Len(t, doList(t, r, "/drinks/admin"), 1)

	status, body = do(t, r, http.MethodPatch, "/drinks/"+id+"/stock", map[string]int{"cantidad": 6})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(6), body["stock"])
	assert.Len(t, doList(t, r, "/drinks"), 1)

	status, _ = do(t, r, http.MethodDelete, "/drinks/"+id, nil)
	require.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, doList(t, r, "/drinks"))

	status, _ = do(t, r, http.MethodPatch, "/drinks/"+id+"/reactivar", nil)
	require.Equal(t, http.StatusNoContent, status)

	status, body = do(t, r, http.MethodPut, "/drinks/"+id, map[string]interface{}{"nombre": "Agua 500ml", "precio": 1200})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Agua 500ml", body["nombre"])
	assert.Equal(t, "1200", body["precio"])
}

func TestJornadaCompleta(t *testing.T) {
	r, notifier := setup(t)

	status, _ := do(t, r, http.MethodPost, "/register/open", nil)
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, r, http.MethodPost, "/drinks", map[string]interface{}{"nombre": "Gatorade", "precio": 1000, "stock": 3})
	require.Equal(t, http.StatusCreated, status)
	bebidaID := body["id"].(string)

	status, _ = do(t, r, http.MethodPost, "/payments", cuota("30111222", 32000))
	require.Equal(t, http.StatusCreated, status)

	venta := map[string]interface{}{"bebida_id": bebidaID, "cantidad": 2, "metodo_pago": "efectivo"}
	status, body = do(t, r, http.MethodPost, "/drink-sales", venta)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(1), body["stock_restante"])

	venta["cantidad"] = 5
	status, body = do(t, r, http.MethodPost, "/drink-sales", venta)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "stock_insuficiente", body["code"])

	status, body = do(t, r, http.MethodGet, "/register/current", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["abierta"])
	assert.NotNil(t, body["resumen"])

	status, body = do(t, r, http.MethodPost, "/register/close", map[string]string{"tipo": "parcial"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "parcial", body["tipo"])
	assert.Empty(t, notifier.cierres)

	status, body = do(t, r, http.MethodPost, "/register/close", map[string]interface{}{
		"tipo":    "completo",
		"totales": map[string]interface{}{"total_general": 34000},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "34000", body["total_general"])
	assert.Equal(t, "34000", body["efectivo"])
	desvio, ok := body["desvio"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "normal", desvio["clasificacion"])
	cierreID := body["id"].(string)
	assert.Len(t, notifier.cierres, 1)

	status, body = do(t, r, http.MethodGet, "/register/current", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["abierta"])

	status, body = do(t, r, http.MethodPost, "/register/close", map[string]string{"tipo": "completo"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "caja_cerrada", body["code"])

	cierres := doList(t, r, "/register/closures")
	require.Len(t, cierres, 2)
	assert.Equal(t, cierreID, cierres[0]["id"])

	status, body = do(t, r, http.MethodGet, "/register/closures/"+cierreID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completo", body["tipo"])

	status, _ = do(t, r, http.MethodGet, "/register/closures/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = do(t, r, http.MethodGet, "/reports/summary?desde="+hoy()+"&hasta="+hoy(), nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body)
}

func TestGastos(t *testing.T) {
	r, _ := setup(t)
	status, _ := do(t, r, http.MethodPost, "/register/open", nil)
	require.Equal(t, http.StatusCreated, status)

	gasto := map[string]interface{}{
		"monto":          1500,
		"descripcion":    "Articulos de limpieza",
		"fecha":          hoy(),
		"registrado_por": "recepcion",
		"metodo_pago":    "efectivo",
	}
	status, _ = do(t, r, http.MethodPost, "/expenses", gasto)
	require.Equal(t, http.StatusCreated, status)

	gasto["monto"] = -10
	status, body := do(t, r, http.MethodPost, "/expenses", gasto)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validacion", body["code"])

	assert.Len(t, doList(t, r, "/expenses?fecha="+hoy()), 1)
}

func TestSocios(t *testing.T) {
	r, _ := setup(t)
	socio := map[string]string{"nombre": "Ana Perez", "dni": "30111222", "actividad": "Musculacion"}
	status, _ := do(t, r, http.MethodPost, "/members", socio)
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, r, http.MethodPost, "/members", socio)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "socio_duplicado", body["code"])

	assert.Len(t, doList(t, r, "/members?desde="+hoy()+"&hasta="+hoy()), 1)
}

func TestListasVaciasComoArreglo(t *testing.T) {
	r, _ := setup(t)
	for _, path := range []string{
		"/payments?fecha=2024-05-01",
		"/drink-sales?fecha=2024-05-01",
		"/expenses?fecha=2024-05-01",
		"/members",
		"/register/closures",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, "[]", w.Body.String(), path)
	}
}
