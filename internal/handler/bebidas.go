package handler

import (
	"net/http"

	"gympos/internal/dto"
	"gympos/internal/service"

	"github.com/gin-gonic/gin"
)

type BebidasHandler struct{ svc service.BebidaService }

func NewBebidasHandler(svc service.BebidaService) *BebidasHandler {
	return &BebidasHandler{svc: svc}
}

// RegistrarVenta godoc
// @Summary      Venta de bebidas
// @Description  Descuenta stock y registra la venta en una sola operacion. El total se calcula en el servidor.
// @Tags         bebidas
// @Accept       json
// @Produce      json
// @Param        body body     dto.VentaBebidaRequest true "Venta"
// @Success      201  {object} dto.VentaBebidaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /drink-sales [post]
func (h *BebidasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.VentaBebidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BebidasHandler) ListarVentas(c *gin.Context) {
	var f dto.MovimientosFilter
	if !bindQuery(c, &f) {
		return
	}
	ventas, err := h.svc.ListarVentas(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventas)
}

// ListarDisponibles godoc
// @Summary      Bebidas a la venta (activas y con stock)
// @Tags         bebidas
// @Produce      json
// @Success      200  {array}  dto.BebidaResponse
// @Router       /drinks [get]
func (h *BebidasHandler) ListarDisponibles(c *gin.Context) {
	bebidas, err := h.svc.ListarDisponibles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBebidaListResponse(bebidas))
}

func (h *BebidasHandler) ListarTodas(c *gin.Context) {
	bebidas, err := h.svc.ListarTodas(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBebidaListResponse(bebidas))
}

func (h *BebidasHandler) Crear(c *gin.Context) {
	var req dto.CrearBebidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	b, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBebidaResponse(b))
}

func (h *BebidasHandler) Actualizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarBebidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	b, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBebidaResponse(b))
}

func (h *BebidasHandler) Desactivar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BebidasHandler) Reactivar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reponer godoc
// @Summary      Repone stock de una bebida
// @Tags         bebidas
// @Accept       json
// @Produce      json
// @Param        id   path     string                  true "UUID de la bebida"
// @Param        body body     dto.ReponerStockRequest true "Unidades a sumar"
// @Success      200  {object} dto.BebidaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /drinks/{id}/stock [patch]
func (h *BebidasHandler) Reponer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ReponerStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	b, err := h.svc.Reponer(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBebidaResponse(b))
}
