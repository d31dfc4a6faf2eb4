package middleware

import (
	"net/http"
	"time"

	"gympos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// respuestaInterna is the only body a front-desk client sees for a failure the
// handlers did not map to a domain error.
var respuestaInterna = apierror.WithCode("error_interno", "Error interno del servidor")

// ErrorHandler turns errors attached with c.Error into a 500. Handlers that
// already wrote a response (every domain error goes through writeError) keep it;
// the attached errors are only logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("route", c.FullPath()).
			Str("method", c.Request.Method).
			Strs("errores", c.Errors.Errors()).
			Msg("error sin manejar en la solicitud")

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, respuestaInterna)
		}
	}
}

// Recovery answers a panicking handler with the generic 500 body. The panic value
// goes to the log, never to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("route", c.FullPath()).
				Interface("panic", r).
				Msg("panic en handler")
			c.AbortWithStatusJSON(http.StatusInternalServerError, respuestaInterna)
		}()
		c.Next()
	}
}

// Logger writes one access line per request. Server failures log at error and
// rejected requests at warn so a closing-time problem stands out.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()

		status := c.Writer.Status()
		nivel := zerolog.InfoLevel
		switch {
		case status >= http.StatusInternalServerError:
			nivel = zerolog.ErrorLevel
		case status >= http.StatusBadRequest:
			nivel = zerolog.WarnLevel
		}
		log.WithLevel(nivel).
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(inicio)).
			Msg("solicitud")
	}
}
