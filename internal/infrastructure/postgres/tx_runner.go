package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ObraStock-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del ledger atados a la
// tx y hace Commit o Rollback. Los SELECT ... FOR UPDATE de los repos solo
// tienen sentido dentro de esta transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.LedgerRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.LedgerRepos{
		WarehouseStock:        NewWarehouseInventoryRepository(tx),
		ContractorStock:       NewContractorInventoryRepository(tx),
		FinishedStock:         NewFinishedGoodsInventoryRepository(tx),
		Issuances:             NewIssuanceRepository(tx),
		Consumptions:          NewConsumptionRepository(tx),
		Productions:           NewProductionRepository(tx),
		Rejections:            NewRejectionRepository(tx),
		Transfers:             NewTransferRepository(tx),
		PurchaseOrders:        NewPurchaseOrderRepository(tx),
		GoodsReceipts:         NewGoodsReceiptRepository(tx),
		FinishedGoodsReceipts: NewFinishedGoodsReceiptRepository(tx),
		Checks:                NewCheckRepository(tx),
		Anomalies:             NewAnomalyRepository(tx),
		Adjustments:           NewAdjustmentRepository(tx),
		Sequences:             NewSequenceRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
