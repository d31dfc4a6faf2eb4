package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Estados de caja.
const (
	CajaAbierta = "abierta"
	CajaCerrada = "cerrada"
)

// Tipos de cierre.
const (
	CierreParcial  = "parcial"
	CierreCompleto = "completo"
)

// Caja is one cash-drawer session. At most one row may be "abierta" at any time;
// the store enforces it with a partial unique index on estado.
type Caja struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha    string    `gorm:"type:varchar(10);not null;index"` // YYYY-MM-DD
	Estado   string    `gorm:"type:varchar(20);not null;default:'abierta'"`
	OpenedAt time.Time `gorm:"not null"`
	ClosedAt *time.Time
	// Final totals, written only by a complete close.
	TotalEfectivo         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalElectronico      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalGeneral          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CantidadPagos         int             `gorm:"not null;default:0"`
	CantidadVentasBebidas int             `gorm:"not null;default:0"`
	Observaciones         *string
}

func (Caja) TableName() string { return "cajas" }

// TotalesCaja are the final figures written to a Caja by a complete close.
type TotalesCaja struct {
	TotalEfectivo         decimal.Decimal
	TotalElectronico      decimal.Decimal
	TotalGeneral          decimal.Decimal
	CantidadPagos         int
	CantidadVentasBebidas int
	Observaciones         *string
}

// CierreCaja is the immutable snapshot of a closing event. Rows are inserted once
// and never updated or deleted: they are the audit trail of the register.
type CierreCaja struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID uuid.UUID `gorm:"type:uuid;not null;index"`
	Fecha  string    `gorm:"type:varchar(10);not null"`
	Tipo   string    `gorm:"type:varchar(20);not null"`

	TotalCuotas  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalBebidas decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalGastos  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalGeneral decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalNeto    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Gross income by payment method.
	Efectivo         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Electronico      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MixtoEfectivo    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MixtoElectronico decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Net (income minus expenses) by drawer: cash side and electronic side.
	NetoEfectivo    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NetoElectronico decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CantidadPagos         int `gorm:"not null"`
	CantidadVentasBebidas int `gorm:"not null"`
	CantidadSociosNuevos  int `gorm:"not null"`
	CantidadGastos        int `gorm:"not null"`

	// Cross-check against the totals the operator saw before confirming.
	TotalInformado      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Desvio              *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DesvioPct           *decimal.Decimal `gorm:"type:decimal(7,2)"`
	ClasificacionDesvio *string          `gorm:"type:varchar(20)"`

	Observaciones *string
	Detalle       datatypes.JSONType[DetalleCierre] `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time
}

func (CierreCaja) TableName() string { return "cierres_caja" }

// DetalleCierre holds the itemized activity captured at close time.
type DetalleCierre struct {
	Pagos         []PagoDetalle  `json:"pagos"`
	VentasBebidas []VentaBebida  `json:"ventas_bebidas"`
	SociosNuevos  []SocioDetalle `json:"socios_nuevos"`
	Gastos        []Gasto        `json:"gastos"`
}

// PagoDetalle is a payment enriched with the member's data looked up by DNI.
type PagoDetalle struct {
	Pago
	SocioActividad string `json:"socio_actividad,omitempty"`
}

// SocioDetalle is the reporting view of a member signed up while the register was open.
type SocioDetalle struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	DNI       string    `json:"dni"`
	Actividad string    `json:"actividad"`
	FechaAlta time.Time `json:"fecha_alta"`
}
