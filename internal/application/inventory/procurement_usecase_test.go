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

func newProcurementUseCase(s *memrepo.Store) *appinv.ProcurementUseCase {
	return appinv.NewProcurementUseCase(
		&memrepo.Runner{S: s},
		newConversionService(s),
		&memrepo.MaterialRepo{S: s},
		&memrepo.WarehouseRepo{S: s},
		&memrepo.SupplierRepo{S: s},
		&memrepo.PORepo{S: s},
	)
}

func seedSupplier(s *memrepo.Store) {
	s.Suppliers["sup-1"] = &entity.Supplier{ID: "sup-1", Code: "PROV-01", Name: "Aceros del Valle", IsActive: true}
}

func createApprovedPO(t *testing.T, s *memrepo.Store, uc *appinv.ProcurementUseCase) *entity.PurchaseOrder {
	t.Helper()
	po, err := uc.CreatePurchaseOrder(context.Background(), appinv.CreatePOInput{
		SupplierID: "sup-1",
		CreatedBy:  "manager-1",
		Lines: []appinv.POLineInput{
			{MaterialID: "mat-steel", Quantity: d("1000"), UnitOfMeasure: "kg"},
			{MaterialID: "mat-cement", Quantity: d("200"), UnitOfMeasure: "bag"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, uc.ApprovePurchaseOrder(context.Background(), po.ID))
	return po
}

// TestProcurement_RecepcionParcial recibe una sola línea parcialmente: la
// bodega se acredita y la orden queda PARTIALLY_RECEIVED.
func TestProcurement_RecepcionParcial(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	seedSupplier(s)
	uc := newProcurementUseCase(s)
	po := createApprovedPO(t, s, uc)

	receipt, err := uc.ReceiveGoods(context.Background(), appinv.ReceiveGoodsInput{
		PurchaseOrderID: po.ID,
		WarehouseID:     "wh-central",
		ReceivedBy:      "wh-user",
		Lines: []appinv.ReceiptLineInput{
			{POLineID: po.Lines[0].ID, QuantityReceived: d("400")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "GRN-", receipt.GRNNumber[:4])

	stock, err := (&memrepo.WarehouseStockRepo{S: s}).Get("wh-central", "mat-steel")
	require.NoError(t, err)
	assert.True(t, stock.CurrentQuantity.Equal(d("400")))

	updated, _ := (&memrepo.PORepo{S: s}).GetByID(po.ID)
	assert.Equal(t, entity.POStatusPartiallyReceived, updated.Status)
	assert.Equal(t, entity.POLineStatusPartiallyReceived, updated.Lines[0].Status)
	assert.Equal(t, entity.POLineStatusPending, updated.Lines[1].Status)
	assert.True(t, updated.Lines[0].RemainingQuantity().Equal(d("600")))
}

// TestProcurement_RecepcionCompleta al completar todas las líneas la orden
// pasa a RECEIVED.
func TestProcurement_RecepcionCompleta(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	seedSupplier(s)
	uc := newProcurementUseCase(s)
	po := createApprovedPO(t, s, uc)

	_, err := uc.ReceiveGoods(context.Background(), appinv.ReceiveGoodsInput{
		PurchaseOrderID: po.ID, WarehouseID: "wh-central", ReceivedBy: "wh-user",
		Lines: []appinv.ReceiptLineInput{
			{POLineID: po.Lines[0].ID, QuantityReceived: d("1000")},
			{POLineID: po.Lines[1].ID, QuantityReceived: d("200")},
		},
	})
	require.NoError(t, err)

	updated, _ := (&memrepo.PORepo{S: s}).GetByID(po.ID)
	assert.Equal(t, entity.POStatusReceived, updated.Status)
	for _, l := range updated.Lines {
		assert.Equal(t, entity.POLineStatusReceived, l.Status)
	}
}

// TestProcurement_RecepcionEnUnidadSinConversion la fila nueva de bodega nace
// en la unidad de la línea de la orden: recibir en una unidad sin conversión
// definida no falla y almacena en esa unidad.
func TestProcurement_RecepcionEnUnidadSinConversion(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	seedSupplier(s)
	uc := newProcurementUseCase(s)

	po, err := uc.CreatePurchaseOrder(context.Background(), appinv.CreatePOInput{
		SupplierID: "sup-1",
		Lines:      []appinv.POLineInput{{MaterialID: "mat-cement", Quantity: d("40"), UnitOfMeasure: "pallet"}},
	})
	require.NoError(t, err)
	require.NoError(t, uc.ApprovePurchaseOrder(context.Background(), po.ID))

	_, err = uc.ReceiveGoods(context.Background(), appinv.ReceiveGoodsInput{
		PurchaseOrderID: po.ID, WarehouseID: "wh-central", ReceivedBy: "wh-user",
		Lines: []appinv.ReceiptLineInput{{POLineID: po.Lines[0].ID, QuantityReceived: d("40")}},
	})
	require.NoError(t, err)

	stock, err := (&memrepo.WarehouseStockRepo{S: s}).Get("wh-central", "mat-cement")
	require.NoError(t, err)
	assert.Equal(t, "pallet", stock.UnitOfMeasure)
	assert.True(t, stock.CurrentQuantity.Equal(d("40")))
}

// TestProcurement_RecibirContraDraft una orden sin aprobar no recibe.
func TestProcurement_RecibirContraDraft(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	seedSupplier(s)
	uc := newProcurementUseCase(s)

	po, err := uc.CreatePurchaseOrder(context.Background(), appinv.CreatePOInput{
		SupplierID: "sup-1",
		Lines:      []appinv.POLineInput{{MaterialID: "mat-steel", Quantity: d("10"), UnitOfMeasure: "kg"}},
	})
	require.NoError(t, err)

	_, err = uc.ReceiveGoods(context.Background(), appinv.ReceiveGoodsInput{
		PurchaseOrderID: po.ID, WarehouseID: "wh-central",
		Lines: []appinv.ReceiptLineInput{{POLineID: po.Lines[0].ID, QuantityReceived: d("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// TestProcurement_CancelarConRecepcionRechazada una orden con mercancía
// recibida ya no se cancela.
func TestProcurement_CancelarConRecepcionRechazada(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	seedSupplier(s)
	uc := newProcurementUseCase(s)
	po := createApprovedPO(t, s, uc)

	_, err := uc.ReceiveGoods(context.Background(), appinv.ReceiveGoodsInput{
		PurchaseOrderID: po.ID, WarehouseID: "wh-central",
		Lines: []appinv.ReceiptLineInput{{POLineID: po.Lines[0].ID, QuantityReceived: d("100")}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.CancelPurchaseOrder(context.Background(), po.ID), domain.ErrInvalidState)
}

// TestProcurement_LineaAjena recibir contra una línea que no es de la orden falla.
func TestProcurement_LineaAjena(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	seedSupplier(s)
	uc := newProcurementUseCase(s)
	po := createApprovedPO(t, s, uc)

	_, err := uc.ReceiveGoods(context.Background(), appinv.ReceiveGoodsInput{
		PurchaseOrderID: po.ID, WarehouseID: "wh-central",
		Lines: []appinv.ReceiptLineInput{{POLineID: "no-existe", QuantityReceived: d("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
