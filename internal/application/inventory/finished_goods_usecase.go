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

// FinishedGoodsUseCase recepción de producto terminado que un contratista
// entrega a bodega. Acredita el saldo de producto terminado de la bodega; no
// toca los saldos de material (eso ya lo hizo el reporte de producción).
type FinishedGoodsUseCase struct {
	txRunner         TxRunner
	contractorRepo   repository.ContractorRepository
	warehouseRepo    repository.WarehouseRepository
	finishedGoodRepo repository.FinishedGoodRepository
}

// NewFinishedGoodsUseCase construye el caso de uso.
func NewFinishedGoodsUseCase(
	txRunner TxRunner,
	contractorRepo repository.ContractorRepository,
	warehouseRepo repository.WarehouseRepository,
	finishedGoodRepo repository.FinishedGoodRepository,
) *FinishedGoodsUseCase {
	return &FinishedGoodsUseCase{
		txRunner:         txRunner,
		contractorRepo:   contractorRepo,
		warehouseRepo:    warehouseRepo,
		finishedGoodRepo: finishedGoodRepo,
	}
}

// ReceiveFinishedGoodsInput entrada de la recepción.
type ReceiveFinishedGoodsInput struct {
	ContractorID   string
	WarehouseID    string
	FinishedGoodID string
	Quantity       decimal.Decimal
	ReceiptDate    time.Time
	ReceivedBy     string
	Notes          string
}

// Receive registra la entrega y acredita la bodega.
func (uc *FinishedGoodsUseCase) Receive(ctx context.Context, input ReceiveFinishedGoodsInput) (*entity.FinishedGoodsReceipt, error) {
	if input.ContractorID == "" || input.WarehouseID == "" || input.FinishedGoodID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.contractorRepo.GetByID(input.ContractorID); err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !warehouse.IsActive || !warehouse.CanHoldFinishedGoods {
		return nil, domain.ErrInvalidInput
	}
	good, err := uc.finishedGoodRepo.GetByID(input.FinishedGoodID)
	if err != nil {
		return nil, err
	}

	receiptDate := input.ReceiptDate
	if receiptDate.IsZero() {
		receiptDate = time.Now()
	}
	receipt := &entity.FinishedGoodsReceipt{
		ID:             uuid.New().String(),
		ContractorID:   input.ContractorID,
		WarehouseID:    input.WarehouseID,
		FinishedGoodID: input.FinishedGoodID,
		Quantity:       input.Quantity,
		UnitOfMeasure:  conversion.Normalize(good.Unit),
		ReceiptDate:    receiptDate,
		ReceivedBy:     input.ReceivedBy,
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		stock, err := r.FinishedStock.GetForUpdate(input.WarehouseID, input.FinishedGoodID)
		if err == domain.ErrNotFound {
			stock = &entity.FinishedGoodsInventory{
				WarehouseID:     input.WarehouseID,
				FinishedGoodID:  input.FinishedGoodID,
				CurrentQuantity: decimal.Zero,
				UnitOfMeasure:   conversion.Normalize(good.Unit),
			}
		} else if err != nil {
			return err
		}
		stock.CurrentQuantity = stock.CurrentQuantity.Add(input.Quantity)
		stock.LastUpdated = time.Now()
		if err := r.FinishedStock.Upsert(stock); err != nil {
			return err
		}

		number, err := NextDocNumber(r.Sequences, PrefixFinishedReceipt, receiptDate.Year())
		if err != nil {
			return err
		}
		receipt.ReceiptNumber = number
		return r.FinishedGoodsReceipts.Create(receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
