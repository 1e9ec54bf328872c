package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/testutil/memrepo"
)

var epoch = day("2000-01-01")

func newCalculator(s *memrepo.Store) *appinv.ExpectedCalculator {
	return appinv.NewExpectedCalculator(
		&memrepo.IssuanceRepo{S: s},
		&memrepo.ConsumptionRepo{S: s},
		&memrepo.RejectionRepo{S: s},
		&memrepo.CheckRepo{S: s},
		epoch,
	)
}

// TestExpected_SinBaseline apertura 0 + 200 entregados - 80 consumidos - 0
// devueltos = 120 esperados, integrando desde la época.
func TestExpected_SinBaseline(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.Issuances = append(s.Issuances, &entity.MaterialIssuance{
		ID: "iss-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityInBaseUnit: d("200"), IssuedDate: day("2026-08-01"),
	})
	s.Consumos = append(s.Consumos, &entity.Consumption{
		ID: "con-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("80"), ConsumedAt: day("2026-08-10"),
	})

	res, err := newCalculator(s).Expected("ct-1", "mat-steel", day("2026-08-20"))
	require.NoError(t, err)

	assert.False(t, res.HasBaseline)
	assert.True(t, res.Expected.Equal(d("120")), "esperado 120, fue %s", res.Expected)
	assert.True(t, res.Opening.IsZero())
	assert.True(t, res.Issued.Equal(d("200")))
	assert.True(t, res.Consumed.Equal(d("80")))
	assert.Equal(t, epoch, res.WindowStart)
}

// TestExpected_ConBaseline el conteo resuelto fija la apertura y la ventana
// arranca al día siguiente: los movimientos anteriores no se doble-cuentan.
func TestExpected_ConBaseline(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)

	resolved := day("2026-08-05")
	count := d("150")
	s.Checks["chk-1"] = &entity.InventoryCheck{
		ID: "chk-1", Kind: entity.CheckKindAudit, ContractorID: "ct-1",
		CheckDate: day("2026-08-05"), Status: entity.CheckStatusClosed, ResolvedAt: &resolved,
	}
	s.CheckLines["line-1"] = &entity.InventoryCheckLine{
		ID: "line-1", CheckID: "chk-1", MaterialID: "mat-steel", PhysicalCount: &count,
	}

	// Antes del conteo: no debe contar.
	s.Issuances = append(s.Issuances, &entity.MaterialIssuance{
		ID: "iss-0", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityInBaseUnit: d("999"), IssuedDate: day("2026-08-01"),
	})
	// El mismo día del conteo: ya reflejado en el conteo físico, tampoco cuenta.
	s.Issuances = append(s.Issuances, &entity.MaterialIssuance{
		ID: "iss-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityInBaseUnit: d("30"), IssuedDate: day("2026-08-05"),
	})
	// Dentro de la ventana.
	s.Issuances = append(s.Issuances, &entity.MaterialIssuance{
		ID: "iss-2", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityInBaseUnit: d("50"), IssuedDate: day("2026-08-10"),
	})
	s.Consumos = append(s.Consumos, &entity.Consumption{
		ID: "con-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("40"), ConsumedAt: day("2026-08-12"),
	})

	res, err := newCalculator(s).Expected("ct-1", "mat-steel", day("2026-08-20"))
	require.NoError(t, err)

	assert.True(t, res.HasBaseline)
	assert.True(t, res.Opening.Equal(d("150")))
	// 150 + 50 - 40 = 160
	assert.True(t, res.Expected.Equal(d("160")), "esperado 160, fue %s", res.Expected)
	assert.Equal(t, day("2026-08-06"), res.WindowStart)
}

// TestExpected_ConteoDelMismoDiaNoEsApertura un conteo resuelto el mismo día
// de asOf no fija la apertura: tomarlo dejaría fuera los movimientos de esa
// fecha. Recién al día siguiente pasa a ser la línea base.
func TestExpected_ConteoDelMismoDiaNoEsApertura(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.Issuances = append(s.Issuances, &entity.MaterialIssuance{
		ID: "iss-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityInBaseUnit: d("200"), IssuedDate: day("2026-08-10"),
	})
	resolved := day("2026-08-20")
	count := d("50")
	s.Checks["chk-1"] = &entity.InventoryCheck{
		ID: "chk-1", Kind: entity.CheckKindAudit, ContractorID: "ct-1",
		CheckDate: day("2026-08-20"), Status: entity.CheckStatusClosed, ResolvedAt: &resolved,
	}
	s.CheckLines["line-1"] = &entity.InventoryCheckLine{
		ID: "line-1", CheckID: "chk-1", MaterialID: "mat-steel", PhysicalCount: &count,
	}

	res, err := newCalculator(s).Expected("ct-1", "mat-steel", day("2026-08-20"))
	require.NoError(t, err)
	assert.False(t, res.HasBaseline)
	assert.True(t, res.Expected.Equal(d("200")), "esperado 200, fue %s", res.Expected)

	res, err = newCalculator(s).Expected("ct-1", "mat-steel", day("2026-08-21"))
	require.NoError(t, err)
	assert.True(t, res.HasBaseline)
	assert.True(t, res.Opening.Equal(d("50")))
}

// TestExpected_RechazoSoloRecibido un rechazo REPORTED no resta; al recibirse sí.
func TestExpected_RechazoSoloRecibido(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.Issuances = append(s.Issuances, &entity.MaterialIssuance{
		ID: "iss-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityInBaseUnit: d("100"), IssuedDate: day("2026-08-01"),
	})
	s.Rejections["rej-1"] = &entity.MaterialRejection{
		ID: "rej-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityRejected: d("10"), Status: entity.RejectionStatusReported,
	}

	calc := newCalculator(s)
	res, err := calc.Expected("ct-1", "mat-steel", day("2026-08-20"))
	require.NoError(t, err)
	assert.True(t, res.Expected.Equal(d("100")), "rechazo sin recibir no resta")

	receivedAt := day("2026-08-15")
	s.Rejections["rej-1"].Status = entity.RejectionStatusReceived
	s.Rejections["rej-1"].ReceivedAt = &receivedAt
	s.Rejections["rej-1"].QuantityInBaseUnit = d("10")
	s.Rejections["rej-1"].BaseUnit = "kg"

	res, err = calc.Expected("ct-1", "mat-steel", day("2026-08-20"))
	require.NoError(t, err)
	assert.True(t, res.Expected.Equal(d("90")))
	assert.True(t, res.Rejected.Equal(d("10")))
}

// TestExpected_MovimientoDelDiaAsOf los movimientos del propio día asOf cuentan.
func TestExpected_MovimientoDelDiaAsOf(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.Issuances = append(s.Issuances, &entity.MaterialIssuance{
		ID: "iss-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityInBaseUnit: d("25"), IssuedDate: day("2026-08-20"),
	})

	res, err := newCalculator(s).Expected("ct-1", "mat-steel", day("2026-08-20"))
	require.NoError(t, err)
	assert.True(t, res.Expected.Equal(d("25")))
}

// TestExpected_AsOfConHora la hora del asOf se trunca a día.
func TestExpected_AsOfConHora(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.Issuances = append(s.Issuances, &entity.MaterialIssuance{
		ID: "iss-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityInBaseUnit: d("25"), IssuedDate: day("2026-08-20"),
	})

	asOf := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)
	res, err := newCalculator(s).Expected("ct-1", "mat-steel", asOf)
	require.NoError(t, err)
	assert.True(t, res.Expected.Equal(d("25")))
	assert.Equal(t, day("2026-08-20"), res.WindowEnd)
}
