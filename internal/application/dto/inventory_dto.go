package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
)

// Las fechas de negocio viajan como "YYYY-MM-DD"; los handlers las parsean.

// IssueRequest entrega de material a contratista.
type IssueRequest struct {
	WarehouseID   string          `json:"warehouse_id"`
	ContractorID  string          `json:"contractor_id"`
	MaterialID    string          `json:"material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	IssuedDate    string          `json:"issued_date,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// IssuanceResponse entrega registrada.
type IssuanceResponse struct {
	ID                 string          `json:"id"`
	IssuanceNumber     string          `json:"issuance_number"`
	WarehouseID        string          `json:"warehouse_id"`
	ContractorID       string          `json:"contractor_id"`
	MaterialID         string          `json:"material_id"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitOfMeasure      string          `json:"unit_of_measure"`
	QuantityInBaseUnit decimal.Decimal `json:"quantity_in_base_unit"`
	BaseUnit           string          `json:"base_unit"`
	IssuedDate         time.Time       `json:"issued_date"`
	IssuedBy           string          `json:"issued_by"`
	Notes              string          `json:"notes,omitempty"`
}

// FromIssuance convierte la entidad a respuesta.
func FromIssuance(i *entity.MaterialIssuance) IssuanceResponse {
	return IssuanceResponse{
		ID:                 i.ID,
		IssuanceNumber:     i.IssuanceNumber,
		WarehouseID:        i.WarehouseID,
		ContractorID:       i.ContractorID,
		MaterialID:         i.MaterialID,
		Quantity:           i.Quantity,
		UnitOfMeasure:      i.UnitOfMeasure,
		QuantityInBaseUnit: i.QuantityInBaseUnit,
		BaseUnit:           i.BaseUnit,
		IssuedDate:         i.IssuedDate,
		IssuedBy:           i.IssuedBy,
		Notes:              i.Notes,
	}
}

// ReportRejectionRequest reporte de material rechazado.
type ReportRejectionRequest struct {
	ContractorID       string          `json:"contractor_id"`
	MaterialID         string          `json:"material_id"`
	OriginalIssuanceID string          `json:"original_issuance_id,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitOfMeasure      string          `json:"unit_of_measure"`
	RejectionDate      string          `json:"rejection_date,omitempty"`
	RejectionReason    string          `json:"rejection_reason"`
	Notes              string          `json:"notes,omitempty"`
}

// ApproveRejectionRequest aprobación con bodega de retorno.
type ApproveRejectionRequest struct {
	ReturnWarehouseID string `json:"return_warehouse_id"`
}

// DisputeRejectionRequest disputa de una devolución reportada.
type DisputeRejectionRequest struct {
	Reason string `json:"reason"`
}

// RejectionResponse devolución con su estado.
type RejectionResponse struct {
	ID                string          `json:"id"`
	RejectionNumber   string          `json:"rejection_number"`
	ContractorID      string          `json:"contractor_id"`
	MaterialID        string          `json:"material_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	RejectionDate     time.Time       `json:"rejection_date"`
	RejectionReason   string          `json:"rejection_reason"`
	Status            string          `json:"status"`
	ReturnWarehouseID string          `json:"return_warehouse_id,omitempty"`
	GRNNumber         string          `json:"grn_number,omitempty"`
	ReceivedAt        *time.Time      `json:"received_at,omitempty"`
}

// FromRejection convierte la entidad a respuesta.
func FromRejection(m *entity.MaterialRejection) RejectionResponse {
	return RejectionResponse{
		ID:                m.ID,
		RejectionNumber:   m.RejectionNumber,
		ContractorID:      m.ContractorID,
		MaterialID:        m.MaterialID,
		Quantity:          m.QuantityRejected,
		UnitOfMeasure:     m.UnitOfMeasure,
		RejectionDate:     m.RejectionDate,
		RejectionReason:   m.RejectionReason,
		Status:            m.Status,
		ReturnWarehouseID: m.ReturnWarehouseID,
		GRNNumber:         m.WarehouseGRNNumber,
		ReceivedAt:        m.ReceivedAt,
	}
}

// TransferLineRequest línea de transferencia.
type TransferLineRequest struct {
	MaterialID     string          `json:"material_id,omitempty"`
	FinishedGoodID string          `json:"finished_good_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitOfMeasure  string          `json:"unit_of_measure"`
}

// CreateTransferRequest transferencia entre bodegas en borrador.
type CreateTransferRequest struct {
	SourceWarehouseID      string                `json:"source_warehouse_id"`
	DestinationWarehouseID string                `json:"destination_warehouse_id"`
	TransferType           string                `json:"transfer_type"`
	TransferDate           string                `json:"transfer_date,omitempty"`
	Notes                  string                `json:"notes,omitempty"`
	Lines                  []TransferLineRequest `json:"lines"`
}

// TransferLineResponse línea de transferencia registrada.
type TransferLineResponse struct {
	MaterialID     string          `json:"material_id,omitempty"`
	FinishedGoodID string          `json:"finished_good_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitOfMeasure  string          `json:"unit_of_measure"`
}

// TransferResponse transferencia con sus líneas.
type TransferResponse struct {
	ID                     string                 `json:"id"`
	TransferNumber         string                 `json:"transfer_number"`
	SourceWarehouseID      string                 `json:"source_warehouse_id"`
	DestinationWarehouseID string                 `json:"destination_warehouse_id"`
	TransferType           string                 `json:"transfer_type"`
	Status                 string                 `json:"status"`
	TransferDate           time.Time              `json:"transfer_date"`
	CompletedAt            *time.Time             `json:"completed_at,omitempty"`
	Lines                  []TransferLineResponse `json:"lines,omitempty"`
}

// FromTransfer convierte la entidad a respuesta.
func FromTransfer(t *entity.StockTransfer) TransferResponse {
	out := TransferResponse{
		ID:                     t.ID,
		TransferNumber:         t.TransferNumber,
		SourceWarehouseID:      t.SourceWarehouseID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		TransferType:           t.TransferType,
		Status:                 t.Status,
		TransferDate:           t.TransferDate,
		CompletedAt:            t.CompletedAt,
	}
	for _, l := range t.Lines {
		out.Lines = append(out.Lines, TransferLineResponse{
			MaterialID:     l.MaterialID,
			FinishedGoodID: l.FinishedGoodID,
			Quantity:       l.Quantity,
			UnitOfMeasure:  l.UnitOfMeasure,
		})
	}
	return out
}

// POLineRequest línea de orden de compra.
type POLineRequest struct {
	MaterialID    string          `json:"material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitOfMeasure string          `json:"unit_of_measure"`
}

// CreatePORequest orden de compra en borrador.
type CreatePORequest struct {
	SupplierID string          `json:"supplier_id"`
	OrderDate  string          `json:"order_date,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Lines      []POLineRequest `json:"lines"`
}

// POLineResponse línea de la orden con su avance.
type POLineResponse struct {
	ID               string          `json:"id"`
	MaterialID       string          `json:"material_id"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitOfMeasure    string          `json:"unit_of_measure"`
	Status           string          `json:"status"`
}

// POResponse orden de compra con sus líneas.
type POResponse struct {
	ID         string           `json:"id"`
	PONumber   string           `json:"po_number"`
	SupplierID string           `json:"supplier_id"`
	Status     string           `json:"status"`
	OrderDate  time.Time        `json:"order_date"`
	Notes      string           `json:"notes,omitempty"`
	Lines      []POLineResponse `json:"lines,omitempty"`
}

// FromPurchaseOrder convierte la entidad a respuesta.
func FromPurchaseOrder(po *entity.PurchaseOrder) POResponse {
	out := POResponse{
		ID:         po.ID,
		PONumber:   po.PONumber,
		SupplierID: po.SupplierID,
		Status:     po.Status,
		OrderDate:  po.OrderDate,
		Notes:      po.Notes,
	}
	for _, l := range po.Lines {
		out.Lines = append(out.Lines, POLineResponse{
			ID:               l.ID,
			MaterialID:       l.MaterialID,
			QuantityOrdered:  l.QuantityOrdered,
			QuantityReceived: l.QuantityReceived,
			UnitOfMeasure:    l.UnitOfMeasure,
			Status:           l.Status,
		})
	}
	return out
}

// ReceiptLineRequest cantidad recibida contra una línea de la orden.
type ReceiptLineRequest struct {
	POLineID         string          `json:"po_line_id"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	BatchNumber      string          `json:"batch_number,omitempty"`
	Remarks          string          `json:"remarks,omitempty"`
}

// ReceiveGoodsRequest recepción de mercancía contra orden.
type ReceiveGoodsRequest struct {
	PurchaseOrderID string               `json:"purchase_order_id"`
	WarehouseID     string               `json:"warehouse_id"`
	ReceiptDate     string               `json:"receipt_date,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	Lines           []ReceiptLineRequest `json:"lines"`
}

// GoodsReceiptResponse recepción registrada.
type GoodsReceiptResponse struct {
	ID              string    `json:"id"`
	GRNNumber       string    `json:"grn_number"`
	PurchaseOrderID string    `json:"purchase_order_id"`
	WarehouseID     string    `json:"warehouse_id"`
	ReceiptDate     time.Time `json:"receipt_date"`
	ReceivedBy      string    `json:"received_by"`
}

// FromGoodsReceipt convierte la entidad a respuesta.
func FromGoodsReceipt(g *entity.GoodsReceipt) GoodsReceiptResponse {
	return GoodsReceiptResponse{
		ID:              g.ID,
		GRNNumber:       g.GRNNumber,
		PurchaseOrderID: g.PurchaseOrderID,
		WarehouseID:     g.WarehouseID,
		ReceiptDate:     g.ReceiptDate,
		ReceivedBy:      g.ReceivedBy,
	}
}

// ReportProductionRequest reporte de producción de un contratista.
type ReportProductionRequest struct {
	ContractorID   string          `json:"contractor_id"`
	FinishedGoodID string          `json:"finished_good_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ProducedAt     string          `json:"produced_at,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// ProductionResponse reporte registrado.
type ProductionResponse struct {
	ID             string          `json:"id"`
	ContractorID   string          `json:"contractor_id"`
	FinishedGoodID string          `json:"finished_good_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ReportedBy     string          `json:"reported_by"`
	ProducedAt     time.Time       `json:"produced_at"`
}

// FromProduction convierte la entidad a respuesta.
func FromProduction(p *entity.ProductionRecord) ProductionResponse {
	return ProductionResponse{
		ID:             p.ID,
		ContractorID:   p.ContractorID,
		FinishedGoodID: p.FinishedGoodID,
		Quantity:       p.Quantity,
		ReportedBy:     p.ReportedBy,
		ProducedAt:     p.ProducedAt,
	}
}

// ReceiveFinishedGoodsRequest ingreso de producto terminado desde obra.
type ReceiveFinishedGoodsRequest struct {
	ContractorID   string          `json:"contractor_id"`
	WarehouseID    string          `json:"warehouse_id"`
	FinishedGoodID string          `json:"finished_good_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ReceiptDate    string          `json:"receipt_date,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// FinishedGoodsReceiptResponse ingreso registrado.
type FinishedGoodsReceiptResponse struct {
	ID             string          `json:"id"`
	ReceiptNumber  string          `json:"receipt_number"`
	ContractorID   string          `json:"contractor_id"`
	WarehouseID    string          `json:"warehouse_id"`
	FinishedGoodID string          `json:"finished_good_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ReceiptDate    time.Time       `json:"receipt_date"`
}

// FromFinishedGoodsReceipt convierte la entidad a respuesta.
func FromFinishedGoodsReceipt(g *entity.FinishedGoodsReceipt) FinishedGoodsReceiptResponse {
	return FinishedGoodsReceiptResponse{
		ID:             g.ID,
		ReceiptNumber:  g.ReceiptNumber,
		ContractorID:   g.ContractorID,
		WarehouseID:    g.WarehouseID,
		FinishedGoodID: g.FinishedGoodID,
		Quantity:       g.Quantity,
		ReceiptDate:    g.ReceiptDate,
	}
}

// WarehouseStockResponse saldo de material en bodega.
type WarehouseStockResponse struct {
	WarehouseID     string          `json:"warehouse_id"`
	MaterialID      string          `json:"material_id"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
}

// FromWarehouseStock convierte la entidad a respuesta.
func FromWarehouseStock(inv *entity.WarehouseInventory) WarehouseStockResponse {
	return WarehouseStockResponse{
		WarehouseID:     inv.WarehouseID,
		MaterialID:      inv.MaterialID,
		CurrentQuantity: inv.CurrentQuantity,
		UnitOfMeasure:   inv.UnitOfMeasure,
		ReorderPoint:    inv.ReorderPoint,
		ReorderQuantity: inv.ReorderQuantity,
	}
}

// ContractorStockResponse saldo de material en poder de contratista.
type ContractorStockResponse struct {
	ContractorID string          `json:"contractor_id"`
	MaterialID   string          `json:"material_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// FromContractorStock convierte la entidad a respuesta.
func FromContractorStock(inv *entity.ContractorInventory) ContractorStockResponse {
	return ContractorStockResponse{
		ContractorID: inv.ContractorID,
		MaterialID:   inv.MaterialID,
		Quantity:     inv.Quantity,
	}
}

// FinishedStockResponse saldo de producto terminado en bodega.
type FinishedStockResponse struct {
	WarehouseID     string          `json:"warehouse_id"`
	FinishedGoodID  string          `json:"finished_good_id"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
}

// FromFinishedStock convierte la entidad a respuesta.
func FromFinishedStock(inv *entity.FinishedGoodsInventory) FinishedStockResponse {
	return FinishedStockResponse{
		WarehouseID:     inv.WarehouseID,
		FinishedGoodID:  inv.FinishedGoodID,
		CurrentQuantity: inv.CurrentQuantity,
		UnitOfMeasure:   inv.UnitOfMeasure,
	}
}

// ExpectedResponse inventario esperado de un par contratista+material.
type ExpectedResponse struct {
	ContractorID string          `json:"contractor_id"`
	MaterialID   string          `json:"material_id"`
	Expected     decimal.Decimal `json:"expected"`
	Opening      decimal.Decimal `json:"opening"`
	Issued       decimal.Decimal `json:"issued"`
	Consumed     decimal.Decimal `json:"consumed"`
	Rejected     decimal.Decimal `json:"rejected"`
	WindowStart  time.Time       `json:"window_start"`
	WindowEnd    time.Time       `json:"window_end"`
	HasBaseline  bool            `json:"has_baseline"`
}
