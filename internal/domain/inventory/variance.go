package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CheckPolicy captura los dos puntos de divergencia entre las clases de conteo:
// si los valores esperados son visibles antes del envío, y qué direcciones de
// varianza cuentan como anómalas. Una sola máquina de estados se parametriza
// con esto en vez de duplicarse por clase.
type CheckPolicy struct {
	// BlindUntilSubmit oculta esperado/varianza a quien cuenta hasta después
	// del envío irrevocable. Es el mecanismo que impide manipular el conteo.
	BlindUntilSubmit bool
	// ShortageOnly solo los faltantes (variance < 0) levantan anomalía.
	ShortageOnly bool
}

// AuditPolicy auditoría ciega: esperado oculto, solo faltantes son anómalos.
var AuditPolicy = CheckPolicy{BlindUntilSubmit: true, ShortageOnly: true}

// ReconciliationPolicy auto-reporte: varianza visible al enviar, faltante y
// exceso cuentan ambos.
var ReconciliationPolicy = CheckPolicy{BlindUntilSubmit: false, ShortageOnly: false}

// Variance calcula variance = physical - expected y el porcentaje de varianza.
//
// Convención cuando expected = 0 (decisión de política heredada, no una ley):
// 0 si physical también es 0; si no, ±100 con el signo de la varianza.
func Variance(physical, expected decimal.Decimal) (variance, pct decimal.Decimal) {
	variance = physical.Sub(expected)
	if expected.IsZero() {
		if physical.IsZero() {
			return variance, decimal.Zero
		}
		if variance.IsNegative() {
			return variance, hundred.Neg()
		}
		return variance, hundred
	}
	pct = variance.Div(expected).Mul(hundred)
	return variance, pct
}

// IsAnomaly decide si una línea es anómala bajo la política dada:
// |pct| > threshold, restringido a faltantes cuando ShortageOnly.
func (p CheckPolicy) IsAnomaly(variance, pct, threshold decimal.Decimal) bool {
	if p.ShortageOnly && !variance.IsNegative() {
		return false
	}
	return pct.Abs().GreaterThan(threshold)
}
