package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra y sus líneas.
const (
	POStatusDraft             = "DRAFT"
	POStatusApproved          = "APPROVED"
	POStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	POStatusReceived          = "RECEIVED"
	POStatusCancelled         = "CANCELLED"

	POLineStatusPending           = "PENDING"
	POLineStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	POLineStatusReceived          = "RECEIVED"
)

// PurchaseOrder orden de compra a un proveedor.
type PurchaseOrder struct {
	ID         string
	PONumber   string // PO-YYYY-NNNN
	SupplierID string
	Status     string
	OrderDate  time.Time
	CreatedBy  string
	Notes      string
	Lines      []PurchaseOrderLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderLine línea de orden de compra. QuantityReceived se acumula con
// cada recepción y determina el estado de la línea.
type PurchaseOrderLine struct {
	ID               string
	PurchaseOrderID  string
	MaterialID       string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	UnitOfMeasure    string
	Status           string
}

// RemainingQuantity cantidad pendiente por recibir en la línea.
func (l *PurchaseOrderLine) RemainingQuantity() decimal.Decimal {
	return l.QuantityOrdered.Sub(l.QuantityReceived)
}

// GoodsReceipt recepción de mercancía contra una orden de compra (GRN).
type GoodsReceipt struct {
	ID              string
	GRNNumber       string // GRN-YYYY-NNNN
	PurchaseOrderID string
	WarehouseID     string
	ReceiptDate     time.Time
	ReceivedBy      string
	Notes           string
	Lines           []GoodsReceiptLine
	CreatedAt       time.Time
}

// GoodsReceiptLine línea de recepción, en la unidad de la línea de la orden.
type GoodsReceiptLine struct {
	ID               string
	GoodsReceiptID   string
	POLineID         string
	MaterialID       string
	QuantityReceived decimal.Decimal
	UnitOfMeasure    string
	BatchNumber      string
	Remarks          string
}

// FinishedGoodsReceipt recepción de producto terminado entregado por un contratista.
type FinishedGoodsReceipt struct {
	ID             string
	ReceiptNumber  string // FGR-YYYY-NNNN
	ContractorID   string
	WarehouseID    string
	FinishedGoodID string
	Quantity       decimal.Decimal
	UnitOfMeasure  string
	ReceiptDate    time.Time
	ReceivedBy     string
	Notes          string
	CreatedAt      time.Time
}
