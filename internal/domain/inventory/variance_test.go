package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/ObraStock-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// TestVariance_Faltante esperado 120, físico 100 -> varianza -20 (-16.67%).
func TestVariance_Faltante(t *testing.T) {
	variance, pct := inventory.Variance(d("100"), d("120"))

	assert.True(t, variance.Equal(d("-20")), "varianza debe ser -20, fue %s", variance)
	assert.True(t, pct.Round(2).Equal(d("-16.67")), "porcentaje debe ser -16.67, fue %s", pct)
}

// TestVariance_Exceso esperado 120, físico 140 -> varianza +20 (+16.67%).
func TestVariance_Exceso(t *testing.T) {
	variance, pct := inventory.Variance(d("140"), d("120"))

	assert.True(t, variance.Equal(d("20")))
	assert.True(t, pct.Round(2).Equal(d("16.67")))
}

// TestVariance_EsperadoCero convención heredada: 0 si físico 0, si no ±100.
func TestVariance_EsperadoCero(t *testing.T) {
	_, pct := inventory.Variance(decimal.Zero, decimal.Zero)
	assert.True(t, pct.IsZero(), "0 contado sobre 0 esperado no es varianza")

	_, pct = inventory.Variance(d("5"), decimal.Zero)
	assert.True(t, pct.Equal(d("100")), "material aparecido sobre esperado 0 es 100%%")

	variance, pct := inventory.Variance(d("-3"), decimal.Zero)
	assert.True(t, variance.IsNegative())
	assert.True(t, pct.Equal(d("-100")))
}

// TestIsAnomaly_AsimetriaPorPolitica la misma línea con exceso fuera de umbral
// NO es anómala en auditoría (solo faltantes) pero SÍ en reconciliación.
func TestIsAnomaly_AsimetriaPorPolitica(t *testing.T) {
	threshold := d("2")
	variance, pct := inventory.Variance(d("140"), d("120")) // +16.67%

	assert.False(t, inventory.AuditPolicy.IsAnomaly(variance, pct, threshold),
		"exceso no levanta anomalía en auditoría")
	assert.True(t, inventory.ReconciliationPolicy.IsAnomaly(variance, pct, threshold),
		"exceso sí levanta anomalía en reconciliación")
}

// TestIsAnomaly_FaltanteSobreUmbral faltante de -16.67% con umbral 2% es anómalo en ambas políticas.
func TestIsAnomaly_FaltanteSobreUmbral(t *testing.T) {
	threshold := d("2")
	variance, pct := inventory.Variance(d("100"), d("120"))

	assert.True(t, inventory.AuditPolicy.IsAnomaly(variance, pct, threshold))
	assert.True(t, inventory.ReconciliationPolicy.IsAnomaly(variance, pct, threshold))
}

// TestIsAnomaly_DentroDeUmbral varianza bajo el umbral no es anómala.
func TestIsAnomaly_DentroDeUmbral(t *testing.T) {
	threshold := d("5")
	variance, pct := inventory.Variance(d("99"), d("100")) // -1%

	assert.False(t, inventory.AuditPolicy.IsAnomaly(variance, pct, threshold))
	assert.False(t, inventory.ReconciliationPolicy.IsAnomaly(variance, pct, threshold))
}

// TestIsAnomaly_UmbralExacto |pct| == threshold no supera el umbral (es estrictamente mayor).
func TestIsAnomaly_UmbralExacto(t *testing.T) {
	threshold := d("10")
	variance, pct := inventory.Variance(d("90"), d("100")) // -10%

	assert.False(t, inventory.ReconciliationPolicy.IsAnomaly(variance, pct, threshold))
}
