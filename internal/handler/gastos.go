package handler

import (
	"net/http"

	"gympos/internal/dto"
	"gympos/internal/service"

	"github.com/gin-gonic/gin"
)

type GastosHandler struct{ svc service.GastoService }

func NewGastosHandler(svc service.GastoService) *GastosHandler { return &GastosHandler{svc: svc} }

// Registrar godoc
// @Summary      Registra un gasto pagado con dinero de la caja
// @Tags         gastos
// @Accept       json
// @Produce      json
// @Param        body body     dto.RegistrarGastoRequest true "Gasto"
// @Success      201  {object} model.Gasto
// @Failure      400  {object} apierror.APIError
// @Router       /expenses [post]
func (h *GastosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	gasto, err := h.svc.RegistrarGasto(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gasto)
}

func (h *GastosHandler) Listar(c *gin.Context) {
	var f dto.MovimientosFilter
	if !bindQuery(c, &f) {
		return
	}
	gastos, err := h.svc.Listar(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gastos)
}
