package handler

import (
	"net/http"

	"gympos/internal/dto"
	"gympos/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct {
	caja    service.CajaService
	cierres service.CierreService
}

func NewCajaHandler(caja service.CajaService, cierres service.CierreService) *CajaHandler {
	return &CajaHandler{caja: caja, cierres: cierres}
}

// Abrir godoc
// @Summary      Abre la caja del dia
// @Description  Falla con code=caja_abierta si ya hay una caja abierta.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        body body     dto.AbrirCajaRequest true "Fecha de la caja (default: hoy)"
// @Success      201  {object} dto.CajaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /register/open [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if c.Request.ContentLength != 0 && !bindAndValidate(c, &req) {
		return
	}
	caja, err := h.caja.Abrir(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCajaResponse(caja))
}

// Actual godoc
// @Summary      Caja abierta y totales en curso
// @Tags         caja
// @Produce      json
// @Success      200  {object} dto.CajaActualResponse
// @Router       /register/current [get]
func (h *CajaHandler) Actual(c *gin.Context) {
	resp, err := h.caja.ObtenerResumen(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary      Cierre parcial o completo de la caja abierta
// @Description  Recalcula todos los totales y guarda un snapshot. El cierre completo cierra la caja;
// @Description  los totales informados solo se comparan y quedan registrados como desvio.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        body body     dto.CerrarCajaRequest true "Tipo de cierre y totales vistos por el operador"
// @Success      201  {object} dto.CierreResponse
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /register/close [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cierre, err := h.cierres.Cerrar(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCierreResponse(cierre))
}

// ListarCierres godoc
// @Summary      Historial de cierres, el mas reciente primero
// @Tags         caja
// @Produce      json
// @Success      200  {array}  dto.CierreResponse
// @Router       /register/closures [get]
func (h *CajaHandler) ListarCierres(c *gin.Context) {
	cierres, err := h.cierres.Listar(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCierreListResponse(cierres))
}

// ObtenerCierre godoc
// @Summary      Detalle de un cierre
// @Tags         caja
// @Produce      json
// @Param        id   path     string true "UUID del cierre"
// @Success      200  {object} dto.CierreResponse
// @Failure      404  {object} apierror.APIError
// @Router       /register/closures/{id} [get]
func (h *CajaHandler) ObtenerCierre(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cierre, err := h.cierres.Obtener(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCierreResponse(cierre))
}
