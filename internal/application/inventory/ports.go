package inventory

import (
	"context"

	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// LedgerRepos repositorios atados a una misma transacción de BD. Toda mutación
// del ledger corre sobre una instancia de estos, nunca sobre repos del pool.
type LedgerRepos struct {
	WarehouseStock        repository.WarehouseInventoryRepository
	ContractorStock       repository.ContractorInventoryRepository
	FinishedStock         repository.FinishedGoodsInventoryRepository
	Issuances             repository.IssuanceRepository
	Consumptions          repository.ConsumptionRepository
	Productions           repository.ProductionRepository
	Rejections            repository.RejectionRepository
	Transfers             repository.TransferRepository
	PurchaseOrders        repository.PurchaseOrderRepository
	GoodsReceipts         repository.GoodsReceiptRepository
	FinishedGoodsReceipts repository.FinishedGoodsReceiptRepository
	Checks                repository.CheckRepository
	Anomalies             repository.AnomalyRepository
	Adjustments           repository.AdjustmentRepository
	Sequences             repository.SequenceRepository
}

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a
// esa tx. Commit si fn devuelve nil, Rollback si no. Garantiza la atomicidad
// del motor de inventario: o todos los saldos y registros de una operación
// cambian, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(r LedgerRepos) error) error
}
