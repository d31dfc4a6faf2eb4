package repository

import (
	"context"

	"gympos/internal/model"

	"gorm.io/gorm"
)

// PagoRepository persists fee payments and day passes. Create fails with
// ErrDuplicate on a second cuota for the same DNI and date.
type PagoRepository interface {
	Create(ctx context.Context, p *model.Pago) error
	ExisteCuota(ctx context.Context, dni, fecha string) (bool, error)
	List(ctx context.Context, f Filtro) ([]model.Pago, error)
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) Create(ctx context.Context, p *model.Pago) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *pagoRepo) ExisteCuota(ctx context.Context, dni, fecha string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pago{}).
		Where("socio_dni = ? AND fecha = ? AND tipo = ?", dni, fecha, model.PagoCuota).
		Count(&n).Error
	return n > 0, translate(err)
}

func (r *pagoRepo) List(ctx context.Context, f Filtro) ([]model.Pago, error) {
	var pagos []model.Pago
	err := aplicarFiltro(r.db.WithContext(ctx), f).Order("created_at ASC").Find(&pagos).Error
	return pagos, translate(err)
}
