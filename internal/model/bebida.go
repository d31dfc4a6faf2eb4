package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bebida is a sellable stock item. Never physically deleted: historical sales
// reference it by id, so deactivation flips Activo instead.
type Bebida struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string          `gorm:"not null"`
	Precio    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock     int             `gorm:"not null;default:0;check:stock >= 0"`
	Categoria string          `gorm:"not null;default:'general'"`
	Activo    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Bebida) TableName() string { return "bebidas" }

// VentaBebida is a point-of-sale transaction for a stocked drink.
type VentaBebida struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BebidaID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"bebida_id"`
	Nombre           string          `gorm:"not null" json:"nombre"`
	Cantidad         int             `gorm:"not null" json:"cantidad"`
	PrecioUnitario   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precio_unitario"`
	PrecioTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"precio_total"`
	MetodoPago       string          `gorm:"type:varchar(20);not null" json:"metodo_pago"`
	MontoEfectivo    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"monto_efectivo"`
	MontoElectronico decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"monto_electronico"`
	Fecha            string          `gorm:"type:varchar(10);not null;index" json:"fecha"`
	CajaID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"caja_id"`
	StockAnterior    int             `gorm:"not null" json:"stock_anterior"`
	StockNuevo       int             `gorm:"not null" json:"stock_nuevo"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (VentaBebida) TableName() string { return "ventas_bebidas" }
