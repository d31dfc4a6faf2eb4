package repository

import (
	"context"
	"time"

	"gympos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CajaRepository persists register sessions. Create fails with ErrDuplicate when
// another register is already open: the partial unique index on estado makes the
// second of two concurrent opens lose.
type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	FindAbierta(ctx context.Context) (*model.Caja, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	// Cerrar transitions an open register to closed and writes its final totals.
	// ErrNotFound when id does not name an open register.
	Cerrar(ctx context.Context, id uuid.UUID, closedAt time.Time, t model.TotalesCaja) error
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *cajaRepo) FindAbierta(ctx context.Context) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Where("estado = ?", model.CajaAbierta).First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *cajaRepo) Cerrar(ctx context.Context, id uuid.UUID, closedAt time.Time, t model.TotalesCaja) error {
	res := r.db.WithContext(ctx).Model(&model.Caja{}).
		Where("id = ? AND estado = ?", id, model.CajaAbierta).
		Updates(map[string]interface{}{
			"estado":                  model.CajaCerrada,
			"closed_at":               closedAt,
			"total_efectivo":          t.TotalEfectivo,
			"total_electronico":       t.TotalElectronico,
			"total_general":           t.TotalGeneral,
			"cantidad_pagos":          t.CantidadPagos,
			"cantidad_ventas_bebidas": t.CantidadVentasBebidas,
			"observaciones":           t.Observaciones,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
