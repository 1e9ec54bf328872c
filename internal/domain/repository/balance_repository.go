package repository

import "github.com/jhoicas/ObraStock-api/internal/domain/entity"

// WarehouseInventoryRepository saldos de material por bodega.
// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) dentro de la
// transacción vigente; quien llama es responsable de respetar el orden
// global de bloqueo (inventory.SortKeys).
type WarehouseInventoryRepository interface {
	Get(warehouseID, materialID string) (*entity.WarehouseInventory, error)
	GetForUpdate(warehouseID, materialID string) (*entity.WarehouseInventory, error)
	Upsert(inv *entity.WarehouseInventory) error
	ListByWarehouse(warehouseID string) ([]entity.WarehouseInventory, error)
	ListBelowReorderPoint() ([]entity.WarehouseInventory, error)
}

// ContractorInventoryRepository saldos de material en poder de contratista.
// El saldo puede quedar negativo (consumo reportado por encima de lo
// entregado); eso se registra, no se rechaza.
type ContractorInventoryRepository interface {
	Get(contractorID, materialID string) (*entity.ContractorInventory, error)
	GetForUpdate(contractorID, materialID string) (*entity.ContractorInventory, error)
	Upsert(inv *entity.ContractorInventory) error
	ListByContractor(contractorID string) ([]entity.ContractorInventory, error)
	ListPositiveByContractor(contractorID string) ([]entity.ContractorInventory, error)
}

// FinishedGoodsInventoryRepository saldos de producto terminado por bodega.
type FinishedGoodsInventoryRepository interface {
	Get(warehouseID, finishedGoodID string) (*entity.FinishedGoodsInventory, error)
	GetForUpdate(warehouseID, finishedGoodID string) (*entity.FinishedGoodsInventory, error)
	Upsert(inv *entity.FinishedGoodsInventory) error
	ListByWarehouse(warehouseID string) ([]entity.FinishedGoodsInventory, error)
}
