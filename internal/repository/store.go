package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Errors every backend maps its driver-specific failures onto. Services translate
// them into domain errors; anything else coming out of a repository is a store
// failure.
var (
	ErrNotFound          = errors.New("registro no encontrado")
	ErrDuplicate         = errors.New("registro duplicado")
	ErrStockInsuficiente = errors.New("stock insuficiente")
)

// Store groups the repositories of one backend (postgres, mongo or memory).
type Store interface {
	Cajas() CajaRepository
	Cierres() CierreRepository
	Pagos() PagoRepository
	Bebidas() BebidaRepository
	Ventas() VentaBebidaRepository
	Gastos() GastoRepository
	Socios() SocioRepository

	// WithinTx runs fn with a Store whose repositories share one transaction.
	// Backends without multi-document transactions call fn with themselves, so
	// callers must order their writes so that a failure halfway is safe to retry.
	WithinTx(ctx context.Context, fn func(tx Store) error) error

	Ping(ctx context.Context) error
}

// Filtro selects register-scoped records. CajaID takes precedence over dates; an
// exact Fecha over the Desde/Hasta window. Dates are YYYY-MM-DD strings, so the
// window compares lexicographically and both bounds are inclusive.
type Filtro struct {
	CajaID uuid.UUID
	Fecha  string
	Desde  string
	Hasta  string
}

// PorCaja returns a filter for every record tagged with cajaID.
func PorCaja(cajaID uuid.UUID) Filtro { return Filtro{CajaID: cajaID} }

// Incluye reports whether a record with the given register and date matches f.
// Backends that filter in memory use it so they agree with the SQL and Mongo
// implementations.
func (f Filtro) Incluye(cajaID uuid.UUID, fecha string) bool {
	switch {
	case f.CajaID != uuid.Nil:
		return cajaID == f.CajaID
	case f.Fecha != "":
		return fecha == f.Fecha
	}
	if f.Desde != "" && fecha < f.Desde {
		return false
	}
	if f.Hasta != "" && fecha > f.Hasta {
		return false
	}
	return true
}
