package repository

import (
	"context"

	"gympos/internal/model"

	"gorm.io/gorm"
)

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	List(ctx context.Context, f Filtro) ([]model.Gasto, error)
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return translate(r.db.WithContext(ctx).Create(g).Error)
}

func (r *gastoRepo) List(ctx context.Context, f Filtro) ([]model.Gasto, error) {
	var gastos []model.Gasto
	err := aplicarFiltro(r.db.WithContext(ctx), f).Order("created_at ASC").Find(&gastos).Error
	return gastos, translate(err)
}
