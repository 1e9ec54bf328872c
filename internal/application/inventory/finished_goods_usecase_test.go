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

func newFinishedGoodsUseCase(s *memrepo.Store) *appinv.FinishedGoodsUseCase {
	return appinv.NewFinishedGoodsUseCase(
		&memrepo.Runner{S: s},
		&memrepo.ContractorRepo{S: s},
		&memrepo.WarehouseRepo{S: s},
		&memrepo.FinishedGoodRepo{S: s},
	)
}

// TestFinishedGoods_Recepcion acredita el saldo de producto terminado y numera FGR.
func TestFinishedGoods_Recepcion(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.FinishedGoods["fg-panel"] = &entity.FinishedGood{ID: "fg-panel", Name: "Panel", Unit: "unit", IsActive: true}

	uc := newFinishedGoodsUseCase(s)
	receipt, err := uc.Receive(context.Background(), appinv.ReceiveFinishedGoodsInput{
		ContractorID:   "ct-1",
		WarehouseID:    "wh-central",
		FinishedGoodID: "fg-panel",
		Quantity:       d("12"),
		ReceivedBy:     "wh-user",
	})
	require.NoError(t, err)
	assert.Equal(t, "FGR-", receipt.ReceiptNumber[:4])

	stock, err := (&memrepo.FinishedStockRepo{S: s}).Get("wh-central", "fg-panel")
	require.NoError(t, err)
	assert.True(t, stock.CurrentQuantity.Equal(d("12")))

	// Segunda entrega acumula.
	_, err = uc.Receive(context.Background(), appinv.ReceiveFinishedGoodsInput{
		ContractorID: "ct-1", WarehouseID: "wh-central", FinishedGoodID: "fg-panel",
		Quantity: d("8"),
	})
	require.NoError(t, err)
	stock, _ = (&memrepo.FinishedStockRepo{S: s}).Get("wh-central", "fg-panel")
	assert.True(t, stock.CurrentQuantity.Equal(d("20")))
}

// TestFinishedGoods_BodegaSinCapacidad una bodega solo de materiales no recibe
// producto terminado.
func TestFinishedGoods_BodegaSinCapacidad(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.FinishedGoods["fg-panel"] = &entity.FinishedGood{ID: "fg-panel", Name: "Panel", Unit: "unit", IsActive: true}

	_, err := newFinishedGoodsUseCase(s).Receive(context.Background(), appinv.ReceiveFinishedGoodsInput{
		ContractorID: "ct-1", WarehouseID: "wh-norte", FinishedGoodID: "fg-panel",
		Quantity: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
