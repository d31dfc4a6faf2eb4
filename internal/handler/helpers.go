package handler

import (
	"errors"
	"net/http"
	"reflect"

	"gympos/internal/apierror"
	"gympos/internal/middleware"
	"gympos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode("json_invalido", "JSON invalido: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery is bindAndValidate for GET filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode("query_invalida", "Parametros invalidos: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.WithCode("validacion", err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode("validacion", "ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// errorMap translates service sentinels into status + code. Order matters only
// for ErrStore, which is checked last.
var errorMap = []struct {
	err    error
	status int
	code   string
}{
	{service.ErrValidacion, http.StatusBadRequest, "validacion"},
	{service.ErrCajaNoAbierta, http.StatusBadRequest, "caja_cerrada"},
	{service.ErrCajaYaAbierta, http.StatusBadRequest, "caja_abierta"},
	{service.ErrPagoDuplicado, http.StatusBadRequest, "pago_duplicado"},
	{service.ErrBebidaDuplicada, http.StatusBadRequest, "bebida_duplicada"},
	{service.ErrSocioDuplicado, http.StatusBadRequest, "socio_duplicado"},
	{service.ErrStockInsuficiente, http.StatusBadRequest, "stock_insuficiente"},
	{service.ErrNoEncontrado, http.StatusNotFound, "no_encontrado"},
}

// writeError maps a service error to the API envelope. Store failures and
// anything unexpected are logged and answered with a generic 500.
func writeError(c *gin.Context, err error) {
	for _, m := range errorMap {
		if errors.Is(err, m.err) {
			c.JSON(m.status, apierror.WithCode(m.code, err.Error()))
			return
		}
	}
	log.Error().
		Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.FullPath()).
		Msg("store error")
	c.JSON(http.StatusInternalServerError, apierror.WithCode("error_interno", "Error interno del servidor"))
}
