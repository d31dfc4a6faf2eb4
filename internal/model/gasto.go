package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is a money outflow paid from the drawer (cleaning supplies, repairs...).
// Expenses are attributed to a payment method the same way income is.
type Gasto struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Monto            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto"`
	Descripcion      string          `gorm:"not null" json:"descripcion"`
	Fecha            string          `gorm:"type:varchar(10);not null;index" json:"fecha"`
	RegistradoPor    string          `gorm:"not null" json:"registrado_por"`
	MetodoPago       string          `gorm:"type:varchar(20);not null" json:"metodo_pago"`
	MontoEfectivo    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"monto_efectivo"`
	MontoElectronico decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"monto_electronico"`
	CajaID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"caja_id"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (Gasto) TableName() string { return "gastos" }
