package repository

import (
	"context"

	"gympos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CierreRepository is append-only: close snapshots are never updated or deleted.
type CierreRepository interface {
	Create(ctx context.Context, c *model.CierreCaja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error)
	// List returns snapshots newest first.
	List(ctx context.Context) ([]model.CierreCaja, error)
}

type cierreRepo struct{ db *gorm.DB }

func NewCierreRepository(db *gorm.DB) CierreRepository { return &cierreRepo{db: db} }

func (r *cierreRepo) Create(ctx context.Context, c *model.CierreCaja) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *cierreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error) {
	var c model.CierreCaja
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *cierreRepo) List(ctx context.Context) ([]model.CierreCaja, error) {
	var cierres []model.CierreCaja
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&cierres).Error
	return cierres, translate(err)
}
