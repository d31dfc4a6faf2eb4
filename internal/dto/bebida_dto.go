package dto

import (
	"time"

	"gympos/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Ventas ──────────────────────────────────────────────────────────────────

type VentaBebidaRequest struct {
	BebidaID         string          `json:"bebida_id"         validate:"required,uuid"`
	Cantidad         int             `json:"cantidad"          validate:"required,min=1"`
	MetodoPago       string          `json:"metodo_pago"       validate:"required"`
	MontoEfectivo    decimal.Decimal `json:"monto_efectivo"`
	MontoElectronico decimal.Decimal `json:"monto_electronico"`
	// PrecioTotal is what the terminal displayed. The server always charges
	// cantidad × precio and only logs a mismatch.
	PrecioTotal *decimal.Decimal `json:"precio_total"`
	Fecha       string           `json:"fecha"   validate:"omitempty,datetime=2006-01-02"`
	CajaID      string           `json:"caja_id" validate:"omitempty,uuid"`
}

type VentaBebidaResponse struct {
	Venta         model.VentaBebida `json:"venta"`
	StockRestante int               `json:"stock_restante"`
}

// ─── Catalogo ────────────────────────────────────────────────────────────────

type CrearBebidaRequest struct {
	Nombre    string          `json:"nombre"    validate:"required,min=2,max=100"`
	Precio    decimal.Decimal `json:"precio"    validate:"required,gt=0"`
	Stock     int             `json:"stock"     validate:"min=0"`
	Categoria string          `json:"categoria" validate:"omitempty,max=50"`
}

type ActualizarBebidaRequest struct {
	Nombre    string          `json:"nombre"    validate:"required,min=2,max=100"`
	Precio    decimal.Decimal `json:"precio"    validate:"required,gt=0"`
	Categoria string          `json:"categoria" validate:"omitempty,max=50"`
}

type ReponerStockRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

type BebidaResponse struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	Stock     int             `json:"stock"`
	Categoria string          `json:"categoria"`
	Activo    bool            `json:"activo"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

func NewBebidaResponse(b *model.Bebida) BebidaResponse {
	return BebidaResponse{
		ID:        b.ID.String(),
		Nombre:    b.Nombre,
		Precio:    b.Precio,
		Stock:     b.Stock,
		Categoria: b.Categoria,
		Activo:    b.Activo,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func NewBebidaListResponse(bebidas []model.Bebida) []BebidaResponse {
	out := make([]BebidaResponse, 0, len(bebidas))
	for i := range bebidas {
		out = append(out, NewBebidaResponse(&bebidas[i]))
	}
	return out
}
