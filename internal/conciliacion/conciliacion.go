// Package conciliacion aggregates register activity by category and payment
// method. Everything here is a pure function over slices: no store access, no
// clock, no logging. The close snapshot, the live register summary and the
// date-range reports all go through the same code.
package conciliacion

import (
	"strings"

	"gympos/internal/model"

	"github.com/shopspring/decimal"
)

// Tolerancia is the largest absolute difference accepted between a mixed
// payment's split and its total (currency rounding).
var Tolerancia = decimal.NewFromFloat(0.01)

var cien = decimal.NewFromInt(100)

// Movimiento is a money movement reduced to the fields the breakdown needs.
type Movimiento struct {
	Monto            decimal.Decimal
	MetodoPago       string
	MontoEfectivo    decimal.Decimal
	MontoElectronico decimal.Decimal
}

// Desglose is a breakdown by payment method. Mixed movements only contribute to
// the Mixto* buckets, never to the plain Efectivo/Electronico ones.
type Desglose struct {
	Efectivo         decimal.Decimal `json:"efectivo"`
	Electronico      decimal.Decimal `json:"electronico"`
	MixtoEfectivo    decimal.Decimal `json:"mixto_efectivo"`
	MixtoElectronico decimal.Decimal `json:"mixto_electronico"`
	Total            decimal.Decimal `json:"total"`
}

// Sumar returns the bucket-wise sum of d and o.
func (d Desglose) Sumar(o Desglose) Desglose {
	return Desglose{
		Efectivo:         d.Efectivo.Add(o.Efectivo),
		Electronico:      d.Electronico.Add(o.Electronico),
		MixtoEfectivo:    d.MixtoEfectivo.Add(o.MixtoEfectivo),
		MixtoElectronico: d.MixtoElectronico.Add(o.MixtoElectronico),
		Total:            d.Total.Add(o.Total),
	}
}

// Restar returns the bucket-wise difference d - o.
func (d Desglose) Restar(o Desglose) Desglose {
	return Desglose{
		Efectivo:         d.Efectivo.Sub(o.Efectivo),
		Electronico:      d.Electronico.Sub(o.Electronico),
		MixtoEfectivo:    d.MixtoEfectivo.Sub(o.MixtoEfectivo),
		MixtoElectronico: d.MixtoElectronico.Sub(o.MixtoElectronico),
		Total:            d.Total.Sub(o.Total),
	}
}

// LadoEfectivo is the money that physically sits in the drawer.
func (d Desglose) LadoEfectivo() decimal.Decimal { return d.Efectivo.Add(d.MixtoEfectivo) }

// LadoElectronico is the money collected through transfers / card / wallet.
func (d Desglose) LadoElectronico() decimal.Decimal {
	return d.Electronico.Add(d.MixtoElectronico)
}

// DesglosePorMetodo splits movs into method buckets. Total is the sum of the
// movement amounts. The result does not depend on the order of movs.
func DesglosePorMetodo(movs []Movimiento) Desglose {
	d := Desglose{
		Efectivo:         decimal.Zero,
		Electronico:      decimal.Zero,
		MixtoEfectivo:    decimal.Zero,
		MixtoElectronico: decimal.Zero,
		Total:            decimal.Zero,
	}
	for _, m := range movs {
		switch NormalizarMetodo(m.MetodoPago) {
		case model.MetodoEfectivo:
			d.Efectivo = d.Efectivo.Add(m.Monto)
		case model.MetodoElectronico:
			d.Electronico = d.Electronico.Add(m.Monto)
		case model.MetodoMixto:
			d.MixtoEfectivo = d.MixtoEfectivo.Add(m.MontoEfectivo)
			d.MixtoElectronico = d.MixtoElectronico.Add(m.MontoElectronico)
		}
		d.Total = d.Total.Add(m.Monto)
	}
	return d
}

// Netos is income minus expenses, overall and per method.
type Netos struct {
	IngresoBruto    decimal.Decimal `json:"ingreso_bruto"`
	TotalGastos     decimal.Decimal `json:"total_gastos"`
	TotalNeto       decimal.Decimal `json:"total_neto"`
	PorMetodo       Desglose        `json:"por_metodo"`
	LadoEfectivo    decimal.Decimal `json:"lado_efectivo"`
	LadoElectronico decimal.Decimal `json:"lado_electronico"`
}

// TotalesNetos computes gross income (payments + sales), subtracts expenses and
// does the same per method bucket.
func TotalesNetos(pagos, ventas, gastos []Movimiento) Netos {
	ingresos := DesglosePorMetodo(pagos).Sumar(DesglosePorMetodo(ventas))
	egresos := DesglosePorMetodo(gastos)
	neto := ingresos.Restar(egresos)
	return Netos{
		IngresoBruto:    ingresos.Total,
		TotalGastos:     egresos.Total,
		TotalNeto:       neto.Total,
		PorMetodo:       neto,
		LadoEfectivo:    neto.LadoEfectivo(),
		LadoElectronico: neto.LadoElectronico(),
	}
}

// Resumen is the full reconciliation of a set of records.
type Resumen struct {
	Cuotas   Desglose `json:"cuotas"`
	Bebidas  Desglose `json:"bebidas"`
	Gastos   Desglose `json:"gastos"`
	Ingresos Desglose `json:"ingresos"`
	Netos    Netos    `json:"netos"`

	CantidadPagos  int `json:"cantidad_pagos"`
	CantidadVentas int `json:"cantidad_ventas_bebidas"`
	CantidadGastos int `json:"cantidad_gastos"`
}

// Resumir reconciles payments, drink sales and expenses. Category totals are
// computed on the records of each kind before splitting by method.
func Resumir(pagos []model.Pago, ventas []model.VentaBebida, gastos []model.Gasto) Resumen {
	mp, mv, mg := DePagos(pagos), DeVentas(ventas), DeGastos(gastos)
	cuotas := DesglosePorMetodo(mp)
	bebidas := DesglosePorMetodo(mv)
	return Resumen{
		Cuotas:         cuotas,
		Bebidas:        bebidas,
		Gastos:         DesglosePorMetodo(mg),
		Ingresos:       cuotas.Sumar(bebidas),
		Netos:          TotalesNetos(mp, mv, mg),
		CantidadPagos:  len(pagos),
		CantidadVentas: len(ventas),
		CantidadGastos: len(gastos),
	}
}

// Pct returns round(100*part/whole), or 0 when whole is not positive.
func Pct(part, whole decimal.Decimal) int64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Mul(cien).Div(whole).Round(0).IntPart()
}

// Participacion is the percentage share of each method in a breakdown.
type Participacion struct {
	Efectivo         int64 `json:"efectivo"`
	Electronico      int64 `json:"electronico"`
	MixtoEfectivo    int64 `json:"mixto_efectivo"`
	MixtoElectronico int64 `json:"mixto_electronico"`
}

// ParticipacionPorMetodo applies Pct to every bucket of d against d.Total.
func ParticipacionPorMetodo(d Desglose) Participacion {
	return Participacion{
		Efectivo:         Pct(d.Efectivo, d.Total),
		Electronico:      Pct(d.Electronico, d.Total),
		MixtoEfectivo:    Pct(d.MixtoEfectivo, d.Total),
		MixtoElectronico: Pct(d.MixtoElectronico, d.Total),
	}
}

// CuadraSplit reports whether efectivo + electronico equals monto within Tolerancia.
func CuadraSplit(monto, efectivo, electronico decimal.Decimal) bool {
	return efectivo.Add(electronico).Sub(monto).Abs().LessThanOrEqual(Tolerancia)
}

// NormalizarMetodo maps operator input ("Efectivo", " MIXTO ") to the canonical
// lowercase method name. Unknown values are returned lowercased.
func NormalizarMetodo(m string) string {
	return strings.ToLower(strings.TrimSpace(m))
}

// DePagos adapts payments to movements.
func DePagos(pagos []model.Pago) []Movimiento {
	out := make([]Movimiento, 0, len(pagos))
	for _, p := range pagos {
		out = append(out, Movimiento{Monto: p.Monto, MetodoPago: p.MetodoPago,
			MontoEfectivo: p.MontoEfectivo, MontoElectronico: p.MontoElectronico})
	}
	return out
}

// DeVentas adapts drink sales to movements.
func DeVentas(ventas []model.VentaBebida) []Movimiento {
	out := make([]Movimiento, 0, len(ventas))
	for _, v := range ventas {
		out = append(out, Movimiento{Monto: v.PrecioTotal, MetodoPago: v.MetodoPago,
			MontoEfectivo: v.MontoEfectivo, MontoElectronico: v.MontoElectronico})
	}
	return out
}

// DeGastos adapts expenses to movements.
func DeGastos(gastos []model.Gasto) []Movimiento {
	out := make([]Movimiento, 0, len(gastos))
	for _, g := range gastos {
		out = append(out, Movimiento{Monto: g.Monto, MetodoPago: g.MetodoPago,
			MontoEfectivo: g.MontoEfectivo, MontoElectronico: g.MontoElectronico})
	}
	return out
}
