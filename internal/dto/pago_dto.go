package dto

import "github.com/shopspring/decimal"

// RegistrarPagoRequest is POST /payments. Amounts and the payment method are
// checked by the service so that every money rule answers with the same error.
type RegistrarPagoRequest struct {
	SocioNombre      string          `json:"socio_nombre"      validate:"required,max=120"`
	SocioDNI         string          `json:"socio_dni"         validate:"omitempty,max=20"`
	Monto            decimal.Decimal `json:"monto"`
	Fecha            string          `json:"fecha"             validate:"required,datetime=2006-01-02"`
	MetodoPago       string          `json:"metodo_pago"       validate:"required"`
	MontoEfectivo    decimal.Decimal `json:"monto_efectivo"`
	MontoElectronico decimal.Decimal `json:"monto_electronico"`
	Tipo             string          `json:"tipo"` // cuota (default) | pase_diario
	CajaID           string          `json:"caja_id"           validate:"omitempty,uuid"`
}

// MovimientosFilter is bound from the query string of the GET list endpoints.
// caja_id wins over fecha, fecha over the desde/hasta window.
type MovimientosFilter struct {
	Fecha  string `form:"fecha"   validate:"omitempty,datetime=2006-01-02"`
	Desde  string `form:"desde"   validate:"omitempty,datetime=2006-01-02"`
	Hasta  string `form:"hasta"   validate:"omitempty,datetime=2006-01-02"`
	CajaID string `form:"caja_id" validate:"omitempty,uuid"`
}
