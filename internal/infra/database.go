package infra

import (
	"fmt"

	"gympos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial and expression unique indexes).
//
// TranslateError is required: repositories rely on gorm.ErrDuplicatedKey to
// detect unique violations.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates the schema. Integration tests call it on a fresh
// container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(
		&model.Caja{},
		&model.CierreCaja{},
		&model.Pago{},
		&model.Bebida{},
		&model.VentaBebida{},
		&model.Gasto{},
		&model.Socio{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// handle on its own. These indexes are what make the register rules hold under
// concurrent requests; the services' lookups only produce friendlier errors.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// at most one open register
		{"uniq_cajas_abierta", `
CREATE UNIQUE INDEX IF NOT EXISTS uniq_cajas_abierta
    ON cajas (estado) WHERE estado = 'abierta'`},
		// one cuota per member per day; day passes are not restricted
		{"uniq_pagos_cuota_dni_fecha", `
CREATE UNIQUE INDEX IF NOT EXISTS uniq_pagos_cuota_dni_fecha
    ON pagos (socio_dni, fecha) WHERE tipo = 'cuota'`},
		// drink names are unique ignoring case
		{"uniq_bebidas_nombre", `
CREATE UNIQUE INDEX IF NOT EXISTS uniq_bebidas_nombre
    ON bebidas (lower(nombre))`},
		// one complete close per register; partial closes are unlimited
		{"uniq_cierres_completo_caja", `
CREATE UNIQUE INDEX IF NOT EXISTS uniq_cierres_completo_caja
    ON cierres_caja (caja_id) WHERE tipo = 'completo'`},
		{"idx_cierres_caja_created", `
CREATE INDEX IF NOT EXISTS idx_cierres_caja_created
    ON cierres_caja (created_at DESC)`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
