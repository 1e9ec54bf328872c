package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/testutil/memrepo"
)

func newProductionUseCase(s *memrepo.Store) *appinv.ProductionUseCase {
	return appinv.NewProductionUseCase(
		&memrepo.Runner{S: s},
		&memrepo.ContractorRepo{S: s},
		&memrepo.FinishedGoodRepo{S: s},
	)
}

// seedPanel panel prefabricado: 1 panel = 20 kg de acero + 3 bultos de cemento.
func seedPanel(s *memrepo.Store) {
	s.FinishedGoods["fg-panel"] = &entity.FinishedGood{ID: "fg-panel", Code: "PANEL-A", Name: "Panel prefabricado", Unit: "unit", IsActive: true}
	s.BOMs["fg-panel"] = []entity.BOMItem{
		{ID: "bom-1", FinishedGoodID: "fg-panel", MaterialID: "mat-steel", QuantityPerUnit: d("20")},
		{ID: "bom-2", FinishedGoodID: "fg-panel", MaterialID: "mat-cement", QuantityPerUnit: d("3")},
	}
}

// TestProduction_ExplosionDeBOM producir 5 paneles consume 100 kg de acero y
// 15 bultos de cemento del saldo del contratista.
func TestProduction_ExplosionDeBOM(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	seedPanel(s)
	s.SeedContractorStock("ct-1", "mat-steel", "500")
	s.SeedContractorStock("ct-1", "mat-cement", "40")

	record, err := newProductionUseCase(s).ReportProduction(context.Background(), appinv.ReportProductionInput{
		ContractorID:   "ct-1",
		FinishedGoodID: "fg-panel",
		Quantity:       d("5"),
		ReportedBy:     "ct-user",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)

	steel, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	cement, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-cement")
	assert.True(t, steel.Quantity.Equal(d("400")))
	assert.True(t, cement.Quantity.Equal(d("25")))

	consumos, _ := (&memrepo.ConsumptionRepo{S: s}).ListByContractor("ct-1")
	assert.Len(t, consumos, 2, "un consumo por línea de BOM")

	anomalies, _ := (&memrepo.AnomalyRepo{S: s}).List("")
	assert.Empty(t, anomalies, "saldos positivos no levantan anomalía")
}

// TestProduction_SaldoNegativoRegistraAnomalia consumir más de lo entregado no
// se rechaza: el saldo queda negativo y se levanta negative_balance.
func TestProduction_SaldoNegativoRegistraAnomalia(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	seedPanel(s)
	s.SeedContractorStock("ct-1", "mat-steel", "30")
	s.SeedContractorStock("ct-1", "mat-cement", "100")

	_, err := newProductionUseCase(s).ReportProduction(context.Background(), appinv.ReportProductionInput{
		ContractorID:   "ct-1",
		FinishedGoodID: "fg-panel",
		Quantity:       d("5"), // necesita 100 kg de acero, hay 30
		ReportedBy:     "ct-user",
	})
	require.NoError(t, err, "el reporte se acepta aunque falte material")

	steel, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, steel.Quantity.Equal(d("-70")), "el saldo negativo se conserva tal cual")

	anomalies, _ := (&memrepo.AnomalyRepo{S: s}).List("open")
	require.Len(t, anomalies, 1)
	assert.Equal(t, entity.AnomalyTypeNegativeBalance, anomalies[0].AnomalyType)
	assert.Equal(t, "mat-steel", anomalies[0].MaterialID)
	assert.True(t, anomalies[0].ActualQty.Equal(d("-70")))
}

// TestProduction_SinBOM un producto sin lista de materiales no puede reportarse.
func TestProduction_SinBOM(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.FinishedGoods["fg-x"] = &entity.FinishedGood{ID: "fg-x", Name: "Sin BOM", IsActive: true}

	_, err := newProductionUseCase(s).ReportProduction(context.Background(), appinv.ReportProductionInput{
		ContractorID: "ct-1", FinishedGoodID: "fg-x", Quantity: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
