package handler

import (
	"net/http"

	"gympos/internal/dto"
	"gympos/internal/service"

	"github.com/gin-gonic/gin"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler { return &PagosHandler{svc: svc} }

// Registrar godoc
// @Summary      Registra una cuota o un pase diario
// @Description  Una cuota por DNI por dia (code=pago_duplicado). Requiere caja abierta (code=caja_cerrada).
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        body body     dto.RegistrarPagoRequest true "Pago"
// @Success      201  {object} model.Pago
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /payments [post]
func (h *PagosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pago, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pago)
}

// Listar godoc
// @Summary      Lista pagos por caja, fecha o rango
// @Tags         pagos
// @Produce      json
// @Param        caja_id query string false "UUID de caja"
// @Param        fecha   query string false "YYYY-MM-DD"
// @Param        desde   query string false "YYYY-MM-DD"
// @Param        hasta   query string false "YYYY-MM-DD"
// @Success      200     {array}  model.Pago
// @Router       /payments [get]
func (h *PagosHandler) Listar(c *gin.Context) {
	var f dto.MovimientosFilter
	if !bindQuery(c, &f) {
		return
	}
	pagos, err := h.svc.Listar(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagos)
}
