package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metodos de pago.
const (
	MetodoEfectivo    = "efectivo"
	MetodoElectronico = "electronico"
	MetodoMixto       = "mixto"
)

// Tipos de pago.
const (
	PagoCuota      = "cuota"
	PagoPaseDiario = "pase_diario"
)

// Pago is a membership fee or a day pass. Immutable once created and permanently
// scoped to the register that was open when it was collected.
// A partial unique index on (socio_dni, fecha) WHERE tipo = 'cuota' backs the
// one-fee-per-member-per-day rule.
type Pago struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SocioNombre string          `gorm:"not null" json:"socio_nombre"`
	SocioDNI    string          `gorm:"type:varchar(20);not null;index" json:"socio_dni"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto"`
	Fecha       string          `gorm:"type:varchar(10);not null;index" json:"fecha"`
	MetodoPago  string          `gorm:"type:varchar(20);not null" json:"metodo_pago"`
	// Split amounts, only meaningful when MetodoPago is "mixto".
	MontoEfectivo    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"monto_efectivo"`
	MontoElectronico decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"monto_electronico"`
	Tipo             string          `gorm:"type:varchar(20);not null" json:"tipo"`
	CajaID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"caja_id"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (Pago) TableName() string { return "pagos" }
