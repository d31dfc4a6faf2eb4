package dto

import "gympos/internal/conciliacion"

type ReporteFilter struct {
	Desde string `form:"desde" validate:"required,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"required,datetime=2006-01-02"`
}

// ResumenReporteResponse is GET /reports/summary: the reconciliation of a date
// window plus percentage shares for the dashboard charts.
type ResumenReporteResponse struct {
	Desde   string               `json:"desde"`
	Hasta   string               `json:"hasta"`
	Resumen conciliacion.Resumen `json:"resumen"`
	// Share of gross income per payment method bucket.
	ParticipacionMetodos conciliacion.Participacion `json:"participacion_metodos"`
	PctCuotas            int64                      `json:"pct_cuotas"`
	PctBebidas           int64                      `json:"pct_bebidas"`
	PctGastos            int64                      `json:"pct_gastos"`
}
