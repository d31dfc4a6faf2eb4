package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormStore struct{ db *gorm.DB }

// NewStore returns the PostgreSQL-backed Store.
func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) Cajas() CajaRepository         { return NewCajaRepository(s.db) }
func (s *gormStore) Cierres() CierreRepository     { return NewCierreRepository(s.db) }
func (s *gormStore) Pagos() PagoRepository         { return NewPagoRepository(s.db) }
func (s *gormStore) Bebidas() BebidaRepository     { return NewBebidaRepository(s.db) }
func (s *gormStore) Ventas() VentaBebidaRepository { return NewVentaBebidaRepository(s.db) }
func (s *gormStore) Gastos() GastoRepository       { return NewGastoRepository(s.db) }
func (s *gormStore) Socios() SocioRepository       { return NewSocioRepository(s.db) }

func (s *gormStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func aplicarFiltro(q *gorm.DB, f Filtro) *gorm.DB {
	switch {
	case f.CajaID != uuid.Nil:
		return q.Where("caja_id = ?", f.CajaID)
	case f.Fecha != "":
		return q.Where("fecha = ?", f.Fecha)
	}
	if f.Desde != "" {
		q = q.Where("fecha >= ?", f.Desde)
	}
	if f.Hasta != "" {
		q = q.Where("fecha <= ?", f.Hasta)
	}
	return q
}
