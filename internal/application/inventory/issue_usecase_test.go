package inventory_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/testutil/memrepo"
	"github.com/jhoicas/ObraStock-api/pkg/logger"
)

func newIssueUseCase(s *memrepo.Store) *appinv.IssueUseCase {
	return newIssueUseCaseWithLogger(s, logger.Nop())
}

func newIssueUseCaseWithLogger(s *memrepo.Store, log *logger.Logger) *appinv.IssueUseCase {
	return appinv.NewIssueUseCase(
		&memrepo.Runner{S: s},
		newConversionService(s),
		&memrepo.MaterialRepo{S: s},
		&memrepo.WarehouseRepo{S: s},
		&memrepo.ContractorRepo{S: s},
		log,
	)
}

// TestIssue_EntregaEnBundles bodega con 1000 kg entrega 10 bundles (500 kg):
// bodega queda en 500 kg y el contratista recibe 500 kg en unidad canónica.
func TestIssue_EntregaEnBundles(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "1000", "kg")

	issuance, err := newIssueUseCase(s).Issue(context.Background(), appinv.IssueInput{
		WarehouseID:   "wh-central",
		ContractorID:  "ct-1",
		MaterialID:    "mat-steel",
		Quantity:      d("10"),
		UnitOfMeasure: "bundle",
		IssuedBy:      "user-1",
	})
	require.NoError(t, err)

	assert.True(t, issuance.QuantityInBaseUnit.Equal(d("500")))
	assert.Equal(t, "kg", issuance.BaseUnit)
	assert.Equal(t, "ISS-", issuance.IssuanceNumber[:4])

	stock, err := (&memrepo.WarehouseStockRepo{S: s}).Get("wh-central", "mat-steel")
	require.NoError(t, err)
	assert.True(t, stock.CurrentQuantity.Equal(d("500")))

	balance, err := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(d("500")))
}

// TestIssue_Conservacion lo que sale de bodega es exactamente lo que entra al
// contratista (misma unidad canónica): la suma total no cambia.
func TestIssue_Conservacion(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "750", "kg")
	s.SeedContractorStock("ct-1", "mat-steel", "120")

	_, err := newIssueUseCase(s).Issue(context.Background(), appinv.IssueInput{
		WarehouseID: "wh-central", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("4"), UnitOfMeasure: "bundle",
	})
	require.NoError(t, err)

	stock, _ := (&memrepo.WarehouseStockRepo{S: s}).Get("wh-central", "mat-steel")
	balance, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	total := stock.CurrentQuantity.Add(balance.Quantity)
	assert.True(t, total.Equal(d("870")), "750+120 debe conservarse, fue %s", total)
}

// TestIssue_StockInsuficiente entrega mayor al saldo no muta nada.
func TestIssue_StockInsuficiente(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "100", "kg")

	_, err := newIssueUseCase(s).Issue(context.Background(), appinv.IssueInput{
		WarehouseID: "wh-central", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("3"), UnitOfMeasure: "bundle", // 150 kg
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.ErrorIs(t, err, domain.ErrNotFound, "no debe crearse saldo de contratista")
}

// TestIssue_SinFilaDeStock bodega sin fila para el material = sin stock.
func TestIssue_SinFilaDeStock(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)

	_, err := newIssueUseCase(s).Issue(context.Background(), appinv.IssueInput{
		WarehouseID: "wh-central", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("1"), UnitOfMeasure: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// TestIssue_SinConversion unidad sin factor definido rechaza la entrega.
func TestIssue_SinConversion(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "1000", "kg")

	_, err := newIssueUseCase(s).Issue(context.Background(), appinv.IssueInput{
		WarehouseID: "wh-central", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("2"), UnitOfMeasure: "m3",
	})
	assert.ErrorIs(t, err, domain.ErrNoConversionDefined)
}

// TestIssue_CantidadInvalida cero o negativa.
func TestIssue_CantidadInvalida(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)

	uc := newIssueUseCase(s)
	_, err := uc.Issue(context.Background(), appinv.IssueInput{
		WarehouseID: "wh-central", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Issue(context.Background(), appinv.IssueInput{
		WarehouseID: "wh-central", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("-5"), UnitOfMeasure: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestIssue_AdvierteBajoPuntoDeReorden la entrega que deja la bodega bajo su
// punto de reorden queda advertida en el log con bodega y material.
func TestIssue_AdvierteBajoPuntoDeReorden(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "600", "kg")
	stock, err := (&memrepo.WarehouseStockRepo{S: s}).Get("wh-central", "mat-steel")
	require.NoError(t, err)
	stock.ReorderPoint = d("200")

	var buf bytes.Buffer
	uc := newIssueUseCaseWithLogger(s, logger.NewWithWriter(&buf, "warn"))

	_, err = uc.Issue(context.Background(), appinv.IssueInput{
		WarehouseID: "wh-central", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("500"), UnitOfMeasure: "kg",
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "punto de reorden")
	assert.Contains(t, buf.String(), "wh-central")
	assert.Contains(t, buf.String(), "mat-steel")
}

// TestIssue_SinAdvertenciaSobrePuntoDeReorden quedar por encima del punto de
// reorden no emite nada.
func TestIssue_SinAdvertenciaSobrePuntoDeReorden(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "600", "kg")
	stock, err := (&memrepo.WarehouseStockRepo{S: s}).Get("wh-central", "mat-steel")
	require.NoError(t, err)
	stock.ReorderPoint = d("200")

	var buf bytes.Buffer
	uc := newIssueUseCaseWithLogger(s, logger.NewWithWriter(&buf, "warn"))

	_, err = uc.Issue(context.Background(), appinv.IssueInput{
		WarehouseID: "wh-central", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("100"), UnitOfMeasure: "kg",
	})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

// TestIssue_NumeracionConsecutiva dos entregas del mismo año llevan consecutivos.
func TestIssue_NumeracionConsecutiva(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "1000", "kg")

	uc := newIssueUseCase(s)
	first, err := uc.Issue(context.Background(), appinv.IssueInput{
		WarehouseID: "wh-central", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("10"), UnitOfMeasure: "kg", IssuedDate: day("2026-03-01"),
	})
	require.NoError(t, err)
	second, err := uc.Issue(context.Background(), appinv.IssueInput{
		WarehouseID: "wh-central", ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("10"), UnitOfMeasure: "kg", IssuedDate: day("2026-03-02"),
	})
	require.NoError(t, err)

	assert.Equal(t, "ISS-2026-0001", first.IssuanceNumber)
	assert.Equal(t, "ISS-2026-0002", second.IssuanceNumber)
}
