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

func newTransferUseCase(s *memrepo.Store) *appinv.TransferUseCase {
	return appinv.NewTransferUseCase(
		&memrepo.Runner{S: s},
		newConversionService(s),
		&memrepo.WarehouseRepo{S: s},
		&memrepo.MaterialRepo{S: s},
		&memrepo.TransferRepo{S: s},
	)
}

func createSteelTransfer(t *testing.T, uc *appinv.TransferUseCase, qty string) *entity.StockTransfer {
	t.Helper()
	transfer, err := uc.Create(context.Background(), appinv.CreateTransferInput{
		SourceWarehouseID:      "wh-central",
		DestinationWarehouseID: "wh-norte",
		TransferType:           entity.TransferTypeMaterial,
		RequestedBy:            "user-1",
		Lines: []appinv.TransferLineInput{
			{MaterialID: "mat-steel", Quantity: d(qty), UnitOfMeasure: "kg"},
		},
	})
	require.NoError(t, err)
	return transfer
}

// TestTransfer_CicloCompleto draft -> submitted -> completed mueve el saldo al completar.
func TestTransfer_CicloCompleto(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "300", "kg")

	uc := newTransferUseCase(s)
	transfer := createSteelTransfer(t, uc, "120")
	assert.Equal(t, entity.TransferStatusDraft, transfer.Status)
	assert.Equal(t, "TRF-", transfer.TransferNumber[:4])

	require.NoError(t, uc.Submit(context.Background(), transfer.ID))
	source, _ := (&memrepo.WarehouseStockRepo{S: s}).Get("wh-central", "mat-steel")
	assert.True(t, source.CurrentQuantity.Equal(d("300")), "enviar no mueve inventario")

	require.NoError(t, uc.Complete(context.Background(), transfer.ID, "wh-user"))
	source, _ = (&memrepo.WarehouseStockRepo{S: s}).Get("wh-central", "mat-steel")
	dest, err := (&memrepo.WarehouseStockRepo{S: s}).Get("wh-norte", "mat-steel")
	require.NoError(t, err)
	assert.True(t, source.CurrentQuantity.Equal(d("180")))
	assert.True(t, dest.CurrentQuantity.Equal(d("120")))
}

// TestTransfer_CompletarSinEnviar draft no puede completarse.
func TestTransfer_CompletarSinEnviar(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "300", "kg")

	uc := newTransferUseCase(s)
	transfer := createSteelTransfer(t, uc, "50")

	err := uc.Complete(context.Background(), transfer.ID, "wh-user")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// TestTransfer_OrigenInsuficiente la transferencia completa falla si una línea no alcanza.
func TestTransfer_OrigenInsuficiente(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "100", "kg")

	uc := newTransferUseCase(s)
	transfer := createSteelTransfer(t, uc, "150")
	require.NoError(t, uc.Submit(context.Background(), transfer.ID))

	err := uc.Complete(context.Background(), transfer.ID, "wh-user")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// TestTransfer_MismaBodega origen = destino es inválido.
func TestTransfer_MismaBodega(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)

	_, err := newTransferUseCase(s).Create(context.Background(), appinv.CreateTransferInput{
		SourceWarehouseID:      "wh-central",
		DestinationWarehouseID: "wh-central",
		TransferType:           entity.TransferTypeMaterial,
		Lines:                  []appinv.TransferLineInput{{MaterialID: "mat-steel", Quantity: d("1"), UnitOfMeasure: "kg"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestTransfer_Cancelar una transferencia completada no se cancela.
func TestTransfer_Cancelar(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "300", "kg")

	uc := newTransferUseCase(s)
	transfer := createSteelTransfer(t, uc, "10")
	require.NoError(t, uc.Cancel(context.Background(), transfer.ID))

	other := createSteelTransfer(t, uc, "10")
	require.NoError(t, uc.Submit(context.Background(), other.ID))
	require.NoError(t, uc.Complete(context.Background(), other.ID, "wh-user"))
	assert.ErrorIs(t, uc.Cancel(context.Background(), other.ID), domain.ErrInvalidState)
}
