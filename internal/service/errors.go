package service

import (
	"errors"
	"fmt"
	"time"

	"gympos/internal/conciliacion"
	"gympos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain errors. Services wrap them with a human-readable detail
// (fmt.Errorf("%w: ...")) and handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidacion        = errors.New("datos invalidos")
	ErrCajaNoAbierta     = errors.New("no hay caja abierta")
	ErrCajaYaAbierta     = errors.New("ya existe una caja abierta")
	ErrPagoDuplicado     = errors.New("pago duplicado")
	ErrBebidaDuplicada   = errors.New("bebida duplicada")
	ErrSocioDuplicado    = errors.New("socio duplicado")
	ErrNoEncontrado      = errors.New("no encontrado")
	ErrStockInsuficiente = errors.New("stock insuficiente")
	ErrStore             = errors.New("error de almacenamiento")
)

const fechaLayout = "2006-01-02"

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

func hoy() string { return time.Now().Format(fechaLayout) }

func validarFecha(f string) error {
	if _, err := time.Parse(fechaLayout, f); err != nil {
		return fmt.Errorf("%w: fecha %q no tiene formato AAAA-MM-DD", ErrValidacion, f)
	}
	return nil
}

// cobro is a validated payment method with its split.
type cobro struct {
	metodo      string
	efectivo    decimal.Decimal
	electronico decimal.Decimal
}

// validarCobro checks the amount and the payment method of any money movement.
// Only mixed movements keep their split, adjusted to sum to monto; for the
// others both parts are zero.
func validarCobro(monto decimal.Decimal, metodo string, efectivo, electronico decimal.Decimal) (cobro, error) {
	if !monto.IsPositive() {
		return cobro{}, fmt.Errorf("%w: el monto debe ser mayor a cero", ErrValidacion)
	}
	m := conciliacion.NormalizarMetodo(metodo)
	switch m {
	case model.MetodoEfectivo, model.MetodoElectronico:
		return cobro{metodo: m, efectivo: decimal.Zero, electronico: decimal.Zero}, nil
	case model.MetodoMixto:
		if efectivo.IsNegative() || electronico.IsNegative() {
			return cobro{}, fmt.Errorf("%w: los montos de un pago mixto no pueden ser negativos", ErrValidacion)
		}
		if !conciliacion.CuadraSplit(monto, efectivo, electronico) {
			return cobro{}, fmt.Errorf("%w: efectivo (%s) + electronico (%s) debe ser igual al monto (%s)",
				ErrValidacion, efectivo, electronico, monto)
		}
		// within tolerance the parts are rebased so they add up to the amount exactly
		electronico = monto.Sub(efectivo)
		if electronico.IsNegative() {
			efectivo, electronico = monto, decimal.Zero
		}
		return cobro{metodo: m, efectivo: efectivo, electronico: electronico}, nil
	}
	return cobro{}, fmt.Errorf("%w: metodo de pago %q no soportado (efectivo, electronico o mixto)", ErrValidacion, metodo)
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: id %q invalido", ErrValidacion, raw)
	}
	return id, nil
}
