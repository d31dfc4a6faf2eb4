package dto

import "github.com/shopspring/decimal"

type RegistrarGastoRequest struct {
	Monto            decimal.Decimal `json:"monto"`
	Descripcion      string          `json:"descripcion"    validate:"required,min=3,max=255"`
	Fecha            string          `json:"fecha"          validate:"required,datetime=2006-01-02"`
	RegistradoPor    string          `json:"registrado_por" validate:"required,max=100"`
	MetodoPago       string          `json:"metodo_pago"    validate:"required"`
	MontoEfectivo    decimal.Decimal `json:"monto_efectivo"`
	MontoElectronico decimal.Decimal `json:"monto_electronico"`
	CajaID           string          `json:"caja_id"        validate:"omitempty,uuid"`
}
