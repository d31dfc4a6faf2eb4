package dto

import (
	"time"

	"gympos/internal/model"
)

type CrearSocioRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=2,max=120"`
	DNI       string `json:"dni"       validate:"required,min=6,max=20"`
	Actividad string `json:"actividad" validate:"required,max=60"`
}

// SocioFilter bounds GET /members by signup date (inclusive, whole days).
type SocioFilter struct {
	Desde string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"omitempty,datetime=2006-01-02"`
}

type SocioResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	DNI       string `json:"dni"`
	Actividad string `json:"actividad"`
	FechaAlta string `json:"fecha_alta"`
}

func NewSocioResponse(s *model.Socio) SocioResponse {
	return SocioResponse{
		ID:        s.ID.String(),
		Nombre:    s.Nombre,
		DNI:       s.DNI,
		Actividad: s.Actividad,
		FechaAlta: s.FechaAlta.Format(time.RFC3339),
	}
}
