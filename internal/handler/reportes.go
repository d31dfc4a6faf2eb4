package handler

import (
	"net/http"

	"gympos/internal/dto"
	"gympos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Resumen godoc
// @Summary      Conciliacion de un rango de fechas
// @Description  Totales por metodo de pago, netos y porcentajes para el tablero.
// @Tags         reportes
// @Produce      json
// @Param        desde query    string true "YYYY-MM-DD"
// @Param        hasta query    string true "YYYY-MM-DD"
// @Success      200   {object} dto.ResumenReporteResponse
// @Failure      400   {object} apierror.APIError
// @Router       /reports/summary [get]
func (h *ReportesHandler) Resumen(c *gin.Context) {
	var f dto.ReporteFilter
	if !bindQuery(c, &f) {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), f.Desde, f.Hasta)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
