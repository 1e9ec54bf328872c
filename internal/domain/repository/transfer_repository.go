package repository

import "github.com/jhoicas/ObraStock-api/internal/domain/entity"

// TransferRepository traslados entre bodegas (material o producto terminado).
type TransferRepository interface {
	Create(t *entity.StockTransfer) error
	GetByID(id string) (*entity.StockTransfer, error)
	GetByIDForUpdate(id string) (*entity.StockTransfer, error)
	UpdateHeader(t *entity.StockTransfer) error
	List() ([]entity.StockTransfer, error)
}

// PurchaseOrderRepository órdenes de compra con sus líneas.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateLine(line *entity.PurchaseOrderLine) error
	UpdateStatus(id, status string) error
	List() ([]entity.PurchaseOrder, error)
}

// GoodsReceiptRepository recepciones de compra contra orden.
type GoodsReceiptRepository interface {
	Create(g *entity.GoodsReceipt) error
	GetByID(id string) (*entity.GoodsReceipt, error)
	ListByPurchaseOrder(poID string) ([]entity.GoodsReceipt, error)
}

// FinishedGoodsReceiptRepository ingresos de producto terminado desde obra.
type FinishedGoodsReceiptRepository interface {
	Create(r *entity.FinishedGoodsReceipt) error
	GetByID(id string) (*entity.FinishedGoodsReceipt, error)
	List() ([]entity.FinishedGoodsReceipt, error)
}
