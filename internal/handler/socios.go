package handler

import (
	"net/http"

	"gympos/internal/dto"
	"gympos/internal/service"

	"github.com/gin-gonic/gin"
)

type SociosHandler struct{ svc service.SocioService }

func NewSociosHandler(svc service.SocioService) *SociosHandler { return &SociosHandler{svc: svc} }

func (h *SociosHandler) Crear(c *gin.Context) {
	var req dto.CrearSocioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	s, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSocioResponse(s))
}

func (h *SociosHandler) Listar(c *gin.Context) {
	var f dto.SocioFilter
	if !bindQuery(c, &f) {
		return
	}
	socios, err := h.svc.Listar(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.SocioResponse, 0, len(socios))
	for i := range socios {
		out = append(out, dto.NewSocioResponse(&socios[i]))
	}
	c.JSON(http.StatusOK, out)
}
