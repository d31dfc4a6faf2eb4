package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func engine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func get(r http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	r := engine(RateLimiter(2, time.Minute))

	assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)

	w := get(r, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "demasiadas_solicitudes")
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := engine(RateLimiter(0, time.Minute))
	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)
	}
}

func TestRequestID(t *testing.T) {
	r := engine(RequestID())

	w := get(r, "/ping", map[string]string{"X-Request-ID": "recepcion-1"})
	assert.Equal(t, "recepcion-1", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "recepcion-1", w.Body.String())

	w = get(r, "/ping", nil)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := engine(RequestID(), Recovery())
	w := get(r, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error_interno")
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestErrorHandler_ErrorAdjunto(t *testing.T) {
	r := engine(RequestID(), ErrorHandler())
	r.GET("/adjunto", func(c *gin.Context) { _ = c.Error(errors.New("conexion perdida")) })
	r.GET("/respondido", func(c *gin.Context) {
		_ = c.Error(errors.New("conexion perdida"))
		c.JSON(http.StatusConflict, gin.H{"code": "caja_ya_abierta"})
	})

	w := get(r, "/adjunto", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error_interno")
	assert.NotContains(t, w.Body.String(), "conexion perdida")

	w = get(r, "/respondido", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "caja_ya_abierta")
}

func TestErrorHandler_SinErrores(t *testing.T) {
	r := engine(RequestID(), ErrorHandler(), Logger())
	w := get(r, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	r := engine(CORS())
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
