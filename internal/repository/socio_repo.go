package repository

import (
	"context"
	"time"

	"gympos/internal/model"

	"gorm.io/gorm"
)

// SocioRepository reads and registers members. Create fails with ErrDuplicate on
// an existing DNI.
type SocioRepository interface {
	Create(ctx context.Context, s *model.Socio) error
	FindByDNIs(ctx context.Context, dnis []string) ([]model.Socio, error)
	// List returns members signed up in [desde, hasta], oldest first. A zero bound
	// leaves that side open.
	List(ctx context.Context, desde, hasta time.Time) ([]model.Socio, error)
}

type socioRepo struct{ db *gorm.DB }

func NewSocioRepository(db *gorm.DB) SocioRepository { return &socioRepo{db: db} }

func (r *socioRepo) Create(ctx context.Context, s *model.Socio) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *socioRepo) FindByDNIs(ctx context.Context, dnis []string) ([]model.Socio, error) {
	if len(dnis) == 0 {
		return nil, nil
	}
	var socios []model.Socio
	err := r.db.WithContext(ctx).Where("dni IN ?", dnis).Find(&socios).Error
	return socios, translate(err)
}

func (r *socioRepo) List(ctx context.Context, desde, hasta time.Time) ([]model.Socio, error) {
	var socios []model.Socio
	q := r.db.WithContext(ctx).Model(&model.Socio{})
	if !desde.IsZero() {
		q = q.Where("fecha_alta >= ?", desde)
	}
	if !hasta.IsZero() {
		q = q.Where("fecha_alta <= ?", hasta)
	}
	err := q.Order("fecha_alta ASC").Find(&socios).Error
	return socios, translate(err)
}
