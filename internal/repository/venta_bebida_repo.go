package repository

import (
	"context"

	"gympos/internal/model"

	"gorm.io/gorm"
)

type VentaBebidaRepository interface {
	Create(ctx context.Context, v *model.VentaBebida) error
	List(ctx context.Context, f Filtro) ([]model.VentaBebida, error)
}

type ventaBebidaRepo struct{ db *gorm.DB }

func NewVentaBebidaRepository(db *gorm.DB) VentaBebidaRepository { return &ventaBebidaRepo{db: db} }

func (r *ventaBebidaRepo) Create(ctx context.Context, v *model.VentaBebida) error {
	return translate(r.db.WithContext(ctx).Create(v).Error)
}

func (r *ventaBebidaRepo) List(ctx context.Context, f Filtro) ([]model.VentaBebida, error) {
	var ventas []model.VentaBebida
	err := aplicarFiltro(r.db.WithContext(ctx), f).Order("created_at ASC").Find(&ventas).Error
	return ventas, translate(err)
}
