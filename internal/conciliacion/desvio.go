package conciliacion

import "github.com/shopspring/decimal"

// Clasificaciones de desvio.
const (
	DesvioNormal      = "normal"
	DesvioAdvertencia = "advertencia"
	DesvioCritico     = "critico"
)

// Desvio is the difference between the totals an operator reported and the
// totals recomputed from the stored records.
type Desvio struct {
	Monto         decimal.Decimal `json:"monto"`
	Porcentaje    decimal.Decimal `json:"porcentaje"`
	Clasificacion string          `json:"clasificacion"`
}

// CalcularDesvio compares informado against calculado. Porcentaje is relative to
// calculado and rounded to two decimals; a non-zero report against a zero
// calculation counts as a 100% deviation.
func CalcularDesvio(informado, calculado decimal.Decimal) Desvio {
	monto := informado.Sub(calculado)
	pct := decimal.Zero
	switch {
	case !calculado.IsZero():
		pct = monto.Div(calculado).Mul(cien).Round(2)
	case !monto.IsZero():
		pct = cien
		if monto.IsNegative() {
			pct = cien.Neg()
		}
	}
	return Desvio{Monto: monto, Porcentaje: pct, Clasificacion: ClasificarDesvio(pct)}
}

// ClasificarDesvio returns "normal" for |pct| <= 1, "advertencia" for <= 5 and
// "critico" above that.
func ClasificarDesvio(pct decimal.Decimal) string {
	abs := pct.Abs()
	switch {
	case abs.LessThanOrEqual(decimal.NewFromInt(1)):
		return DesvioNormal
	case abs.LessThanOrEqual(decimal.NewFromInt(5)):
		return DesvioAdvertencia
	default:
		return DesvioCritico
	}
}
