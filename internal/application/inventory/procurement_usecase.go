package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/application/conversion"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// ProcurementUseCase órdenes de compra y recepciones de mercancía. La recepción
// es la única entrada de material nuevo al sistema: acredita la bodega y
// recalcula el estado de la orden según lo acumulado por línea.
type ProcurementUseCase struct {
	txRunner      TxRunner
	conversions   *conversion.Service
	materialRepo  repository.MaterialRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	poRepo        repository.PurchaseOrderRepository
}

// NewProcurementUseCase construye el caso de uso.
func NewProcurementUseCase(
	txRunner TxRunner,
	conversions *conversion.Service,
	materialRepo repository.MaterialRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	poRepo repository.PurchaseOrderRepository,
) *ProcurementUseCase {
	return &ProcurementUseCase{
		txRunner:      txRunner,
		conversions:   conversions,
		materialRepo:  materialRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		poRepo:        poRepo,
	}
}

// POLineInput línea solicitada en una orden de compra.
type POLineInput struct {
	MaterialID    string
	Quantity      decimal.Decimal
	UnitOfMeasure string
}

// CreatePOInput entrada para crear una orden en DRAFT.
type CreatePOInput struct {
	SupplierID string
	OrderDate  time.Time
	CreatedBy  string
	Notes      string
	Lines      []POLineInput
}

// CreatePurchaseOrder crea la orden en DRAFT con número PO-YYYY-NNNN.
func (uc *ProcurementUseCase) CreatePurchaseOrder(ctx context.Context, input CreatePOInput) (*entity.PurchaseOrder, error) {
	if input.SupplierID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.supplierRepo.GetByID(input.SupplierID); err != nil {
		return nil, err
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: input.SupplierID,
		Status:     entity.POStatusDraft,
		OrderDate:  orderDate,
		CreatedBy:  input.CreatedBy,
		Notes:      input.Notes,
		CreatedAt:  time.Now(),
	}
	for _, l := range input.Lines {
		if l.MaterialID == "" || !l.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		material, err := uc.materialRepo.GetByID(l.MaterialID)
		if err != nil {
			return nil, err
		}
		unit := conversion.Normalize(l.UnitOfMeasure)
		if unit == "" {
			unit = conversion.Normalize(material.Unit)
		}
		po.Lines = append(po.Lines, entity.PurchaseOrderLine{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			MaterialID:      l.MaterialID,
			QuantityOrdered: l.Quantity,
			UnitOfMeasure:   unit,
			Status:          entity.POLineStatusPending,
		})
	}

	err := uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		number, err := NextDocNumber(r.Sequences, PrefixPurchaseOrder, orderDate.Year())
		if err != nil {
			return err
		}
		po.PONumber = number
		return r.PurchaseOrders.Create(po)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// ApprovePurchaseOrder pasa DRAFT -> APPROVED; solo órdenes aprobadas reciben.
func (uc *ProcurementUseCase) ApprovePurchaseOrder(ctx context.Context, poID string) error {
	if poID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		po, err := r.PurchaseOrders.GetByIDForUpdate(poID)
		if err != nil {
			return err
		}
		if po.Status != entity.POStatusDraft {
			return domain.ErrInvalidState
		}
		return r.PurchaseOrders.UpdateStatus(poID, entity.POStatusApproved)
	})
}

// CancelPurchaseOrder cancela una orden sin recepciones.
func (uc *ProcurementUseCase) CancelPurchaseOrder(ctx context.Context, poID string) error {
	if poID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		po, err := r.PurchaseOrders.GetByIDForUpdate(poID)
		if err != nil {
			return err
		}
		if po.Status != entity.POStatusDraft && po.Status != entity.POStatusApproved {
			return domain.ErrInvalidState
		}
		for _, l := range po.Lines {
			if l.QuantityReceived.IsPositive() {
				return domain.ErrInvalidState
			}
		}
		return r.PurchaseOrders.UpdateStatus(poID, entity.POStatusCancelled)
	})
}

// ReceiptLineInput cantidad recibida contra una línea de la orden.
type ReceiptLineInput struct {
	POLineID         string
	QuantityReceived decimal.Decimal
	BatchNumber      string
	Remarks          string
}

// ReceiveGoodsInput entrada de una recepción de mercancía.
type ReceiveGoodsInput struct {
	PurchaseOrderID string
	WarehouseID     string
	ReceiptDate     time.Time
	ReceivedBy      string
	Notes           string
	Lines           []ReceiptLineInput
}

// ReceiveGoods registra la recepción: acredita la bodega por línea, acumula
// quantity_received en las líneas de la orden y recalcula los estados. Se
// permite sobre-recepción leve (tolerancias del proveedor); la línea queda
// RECEIVED cuando lo acumulado alcanza lo pedido.
func (uc *ProcurementUseCase) ReceiveGoods(ctx context.Context, input ReceiveGoodsInput) (*entity.GoodsReceipt, error) {
	if input.PurchaseOrderID == "" || input.WarehouseID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !warehouse.IsActive || !warehouse.CanHoldMaterials {
		return nil, domain.ErrInvalidInput
	}

	receiptDate := input.ReceiptDate
	if receiptDate.IsZero() {
		receiptDate = time.Now()
	}
	receipt := &entity.GoodsReceipt{
		ID:              uuid.New().String(),
		PurchaseOrderID: input.PurchaseOrderID,
		WarehouseID:     input.WarehouseID,
		ReceiptDate:     receiptDate,
		ReceivedBy:      input.ReceivedBy,
		Notes:           input.Notes,
		CreatedAt:       time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		po, err := r.PurchaseOrders.GetByIDForUpdate(input.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po.Status != entity.POStatusApproved && po.Status != entity.POStatusPartiallyReceived {
			return domain.ErrInvalidState
		}

		linesByID := make(map[string]*entity.PurchaseOrderLine, len(po.Lines))
		for i := range po.Lines {
			linesByID[po.Lines[i].ID] = &po.Lines[i]
		}

		for _, in := range input.Lines {
			if !in.QuantityReceived.IsPositive() {
				return domain.ErrInvalidInput
			}
			poLine, ok := linesByID[in.POLineID]
			if !ok {
				return domain.ErrNotFound
			}

			stock, err := r.WarehouseStock.GetForUpdate(input.WarehouseID, poLine.MaterialID)
			if err == domain.ErrNotFound {
				// La fila nueva se almacena en la unidad de la línea de la
				// orden: recibir en una unidad sin conversión definida es válido.
				stock = &entity.WarehouseInventory{
					WarehouseID:     input.WarehouseID,
					MaterialID:      poLine.MaterialID,
					CurrentQuantity: decimal.Zero,
					UnitOfMeasure:   conversion.Normalize(poLine.UnitOfMeasure),
				}
			} else if err != nil {
				return err
			}
			credit, err := uc.conversions.Convert(poLine.MaterialID, in.QuantityReceived, poLine.UnitOfMeasure, stock.UnitOfMeasure)
			if err != nil {
				return err
			}
			stock.CurrentQuantity = stock.CurrentQuantity.Add(credit)
			stock.LastUpdated = time.Now()
			if err := r.WarehouseStock.Upsert(stock); err != nil {
				return err
			}

			poLine.QuantityReceived = poLine.QuantityReceived.Add(in.QuantityReceived)
			if poLine.QuantityReceived.GreaterThanOrEqual(poLine.QuantityOrdered) {
				poLine.Status = entity.POLineStatusReceived
			} else {
				poLine.Status = entity.POLineStatusPartiallyReceived
			}
			if err := r.PurchaseOrders.UpdateLine(poLine); err != nil {
				return err
			}

			receipt.Lines = append(receipt.Lines, entity.GoodsReceiptLine{
				ID:               uuid.New().String(),
				GoodsReceiptID:   receipt.ID,
				POLineID:         poLine.ID,
				MaterialID:       poLine.MaterialID,
				QuantityReceived: in.QuantityReceived,
				UnitOfMeasure:    poLine.UnitOfMeasure,
				BatchNumber:      in.BatchNumber,
				Remarks:          in.Remarks,
			})
		}

		// Estado de la orden derivado de sus líneas.
		allReceived := true
		for i := range po.Lines {
			if po.Lines[i].Status != entity.POLineStatusReceived {
				allReceived = false
				break
			}
		}
		newStatus := entity.POStatusPartiallyReceived
		if allReceived {
			newStatus = entity.POStatusReceived
		}
		if err := r.PurchaseOrders.UpdateStatus(po.ID, newStatus); err != nil {
			return err
		}

		number, err := NextDocNumber(r.Sequences, PrefixGoodsReceipt, receiptDate.Year())
		if err != nil {
			return err
		}
		receipt.GRNNumber = number
		return r.GoodsReceipts.Create(receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
