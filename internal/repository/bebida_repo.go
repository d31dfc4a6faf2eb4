package repository

import (
	"context"
	"errors"

	"gympos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BebidaRepository manages the drink catalog. Drinks are never deleted, only
// deactivated. Names are unique case-insensitively (unique index on lower(nombre)).
type BebidaRepository interface {
	Create(ctx context.Context, b *model.Bebida) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bebida, error)
	// Update writes nombre, precio and categoria.
	Update(ctx context.Context, b *model.Bebida) error
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error
	// Reponer adds cantidad units of stock and returns the updated drink.
	Reponer(ctx context.Context, id uuid.UUID, cantidad int) (*model.Bebida, error)
	// Descontar atomically takes cantidad units from an active drink, only if that
	// many are available. Returns the stock before and after. ErrNotFound when the
	// drink is missing or inactive; ErrStockInsuficiente leaves the stock untouched.
	Descontar(ctx context.Context, id uuid.UUID, cantidad int) (anterior, nuevo int, err error)
	// List returns drinks ordered by name. soloDisponibles restricts it to active
	// drinks with stock.
	List(ctx context.Context, soloDisponibles bool) ([]model.Bebida, error)
}

type bebidaRepo struct{ db *gorm.DB }

func NewBebidaRepository(db *gorm.DB) BebidaRepository { return &bebidaRepo{db: db} }

func (r *bebidaRepo) Create(ctx context.Context, b *model.Bebida) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *bebidaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bebida, error) {
	var b model.Bebida
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *bebidaRepo) Update(ctx context.Context, b *model.Bebida) error {
	res := r.db.WithContext(ctx).Model(&model.Bebida{}).Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"nombre":    b.Nombre,
			"precio":    b.Precio,
			"categoria": b.Categoria,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bebidaRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	res := r.db.WithContext(ctx).Model(&model.Bebida{}).Where("id = ?", id).Update("activo", activo)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bebidaRepo) Reponer(ctx context.Context, id uuid.UUID, cantidad int) (*model.Bebida, error) {
	var b model.Bebida
	res := r.db.WithContext(ctx).Model(&b).Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", cantidad))
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *bebidaRepo) Descontar(ctx context.Context, id uuid.UUID, cantidad int) (int, int, error) {
	var b model.Bebida
	res := r.db.WithContext(ctx).Model(&b).Clauses(clause.Returning{}).
		Where("id = ? AND activo = true AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return 0, 0, translate(res.Error)
	}
	if res.RowsAffected == 1 {
		return b.Stock + cantidad, b.Stock, nil
	}

	// Nothing matched: tell a missing drink apart from a short one.
	actual, err := r.FindByID(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	if !actual.Activo {
		return 0, 0, ErrNotFound
	}
	return 0, 0, ErrStockInsuficiente
}

func (r *bebidaRepo) List(ctx context.Context, soloDisponibles bool) ([]model.Bebida, error) {
	var bebidas []model.Bebida
	q := r.db.WithContext(ctx).Model(&model.Bebida{})
	if soloDisponibles {
		q = q.Where("activo = true AND stock > 0")
	}
	err := q.Order("nombre ASC").Find(&bebidas).Error
	return bebidas, translate(err)
}

// translate maps gorm errors onto the repository sentinels. The connection must
// be opened with TranslateError so unique violations arrive as ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
