package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/application/conversion"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/ObraStock-api/internal/domain/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// TransferUseCase transferencias entre bodegas. Crear y enviar no mueven
// inventario; Complete descuenta origen y acredita destino línea por línea en
// una sola transacción, adquiriendo los locks en el orden global.
type TransferUseCase struct {
	txRunner      TxRunner
	conversions   *conversion.Service
	warehouseRepo repository.WarehouseRepository
	materialRepo  repository.MaterialRepository
	transferRepo  repository.TransferRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	conversions *conversion.Service,
	warehouseRepo repository.WarehouseRepository,
	materialRepo repository.MaterialRepository,
	transferRepo repository.TransferRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		conversions:   conversions,
		warehouseRepo: warehouseRepo,
		materialRepo:  materialRepo,
		transferRepo:  transferRepo,
	}
}

// TransferLineInput una línea de la transferencia.
type TransferLineInput struct {
	MaterialID     string
	FinishedGoodID string
	Quantity       decimal.Decimal
	UnitOfMeasure  string
}

// CreateTransferInput entrada para crear una transferencia en borrador.
type CreateTransferInput struct {
	SourceWarehouseID      string
	DestinationWarehouseID string
	TransferType           string
	TransferDate           time.Time
	RequestedBy            string
	Notes                  string
	Lines                  []TransferLineInput
}

// Create crea la transferencia en draft con su número TRF.
func (uc *TransferUseCase) Create(ctx context.Context, input CreateTransferInput) (*entity.StockTransfer, error) {
	if input.SourceWarehouseID == "" || input.DestinationWarehouseID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.SourceWarehouseID == input.DestinationWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	if input.TransferType != entity.TransferTypeMaterial && input.TransferType != entity.TransferTypeFinishedGood {
		return nil, domain.ErrInvalidInput
	}
	source, err := uc.warehouseRepo.GetByID(input.SourceWarehouseID)
	if err != nil {
		return nil, err
	}
	dest, err := uc.warehouseRepo.GetByID(input.DestinationWarehouseID)
	if err != nil {
		return nil, err
	}
	if !source.IsActive || !dest.IsActive {
		return nil, domain.ErrInvalidInput
	}
	if input.TransferType == entity.TransferTypeMaterial && (!source.CanHoldMaterials || !dest.CanHoldMaterials) {
		return nil, domain.ErrInvalidInput
	}
	if input.TransferType == entity.TransferTypeFinishedGood && (!source.CanHoldFinishedGoods || !dest.CanHoldFinishedGoods) {
		return nil, domain.ErrInvalidInput
	}

	transferDate := input.TransferDate
	if transferDate.IsZero() {
		transferDate = time.Now()
	}
	transfer := &entity.StockTransfer{
		ID:                     uuid.New().String(),
		SourceWarehouseID:      input.SourceWarehouseID,
		DestinationWarehouseID: input.DestinationWarehouseID,
		TransferType:           input.TransferType,
		Status:                 entity.TransferStatusDraft,
		TransferDate:           transferDate,
		RequestedBy:            input.RequestedBy,
		Notes:                  input.Notes,
		CreatedAt:              time.Now(),
	}
	for _, l := range input.Lines {
		if !l.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		switch input.TransferType {
		case entity.TransferTypeMaterial:
			if l.MaterialID == "" {
				return nil, domain.ErrInvalidInput
			}
		case entity.TransferTypeFinishedGood:
			if l.FinishedGoodID == "" {
				return nil, domain.ErrInvalidInput
			}
		}
		transfer.Lines = append(transfer.Lines, entity.StockTransferLine{
			ID:             uuid.New().String(),
			TransferID:     transfer.ID,
			MaterialID:     l.MaterialID,
			FinishedGoodID: l.FinishedGoodID,
			Quantity:       l.Quantity,
			UnitOfMeasure:  conversion.Normalize(l.UnitOfMeasure),
		})
	}

	err = uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		number, err := NextDocNumber(r.Sequences, PrefixTransfer, transferDate.Year())
		if err != nil {
			return err
		}
		transfer.TransferNumber = number
		return r.Transfers.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// Submit pasa draft -> submitted.
func (uc *TransferUseCase) Submit(ctx context.Context, transferID string) error {
	return uc.transition(ctx, transferID, entity.TransferStatusDraft, entity.TransferStatusSubmitted)
}

// Cancel cancela una transferencia aún no completada.
func (uc *TransferUseCase) Cancel(ctx context.Context, transferID string) error {
	return uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		transfer, err := r.Transfers.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer.Status != entity.TransferStatusDraft && transfer.Status != entity.TransferStatusSubmitted {
			return domain.ErrInvalidState
		}
		transfer.Status = entity.TransferStatusCancelled
		transfer.UpdatedAt = time.Now()
		return r.Transfers.UpdateHeader(transfer)
	})
}

func (uc *TransferUseCase) transition(ctx context.Context, transferID, from, to string) error {
	if transferID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		transfer, err := r.Transfers.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer.Status != from {
			return domain.ErrInvalidState
		}
		transfer.Status = to
		transfer.UpdatedAt = time.Now()
		return r.Transfers.UpdateHeader(transfer)
	})
}

// Complete ejecuta la transferencia: valida suficiencia en origen bajo lock y
// mueve cada línea. Falla completa si una sola línea no alcanza.
func (uc *TransferUseCase) Complete(ctx context.Context, transferID, completedBy string) error {
	if transferID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		transfer, err := r.Transfers.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer.Status != entity.TransferStatusSubmitted {
			return domain.ErrInvalidState
		}

		switch transfer.TransferType {
		case entity.TransferTypeMaterial:
			err = uc.moveMaterials(r, transfer)
		case entity.TransferTypeFinishedGood:
			err = uc.moveFinishedGoods(r, transfer)
		default:
			err = domain.ErrInvalidState
		}
		if err != nil {
			return err
		}

		now := time.Now()
		transfer.Status = entity.TransferStatusCompleted
		transfer.CompletedBy = completedBy
		transfer.CompletedAt = &now
		transfer.UpdatedAt = now
		return r.Transfers.UpdateHeader(transfer)
	})
}

func (uc *TransferUseCase) moveMaterials(r LedgerRepos, transfer *entity.StockTransfer) error {
	// Dos filas por línea (origen y destino): se adquieren en el orden global
	// para no cruzarse con una transferencia en sentido contrario.
	for _, line := range transfer.Lines {
		material, err := uc.materialRepo.GetByID(line.MaterialID)
		if err != nil {
			return err
		}
		keys := []domaininv.BalanceKey{
			{Kind: domaininv.BalanceKindWarehouse, OwnerID: transfer.SourceWarehouseID, ItemID: line.MaterialID},
			{Kind: domaininv.BalanceKindWarehouse, OwnerID: transfer.DestinationWarehouseID, ItemID: line.MaterialID},
		}
		domaininv.SortKeys(keys)

		locked := make(map[string]*entity.WarehouseInventory, 2)
		for _, k := range keys {
			stock, err := r.WarehouseStock.GetForUpdate(k.OwnerID, k.ItemID)
			if err == domain.ErrNotFound {
				if k.OwnerID == transfer.SourceWarehouseID {
					return domain.ErrInsufficientStock
				}
				stock = &entity.WarehouseInventory{
					WarehouseID:     k.OwnerID,
					MaterialID:      k.ItemID,
					CurrentQuantity: decimal.Zero,
					UnitOfMeasure:   conversion.Normalize(material.Unit),
				}
			} else if err != nil {
				return err
			}
			locked[k.OwnerID] = stock
		}

		source := locked[transfer.SourceWarehouseID]
		dest := locked[transfer.DestinationWarehouseID]

		deduct, err := uc.conversions.Convert(line.MaterialID, line.Quantity, line.UnitOfMeasure, source.UnitOfMeasure)
		if err != nil {
			return err
		}
		if source.CurrentQuantity.LessThan(deduct) {
			return domain.ErrInsufficientStock
		}
		credit, err := uc.conversions.Convert(line.MaterialID, line.Quantity, line.UnitOfMeasure, dest.UnitOfMeasure)
		if err != nil {
			return err
		}

		now := time.Now()
		source.CurrentQuantity = source.CurrentQuantity.Sub(deduct)
		source.LastUpdated = now
		dest.CurrentQuantity = dest.CurrentQuantity.Add(credit)
		dest.LastUpdated = now
		if err := r.WarehouseStock.Upsert(source); err != nil {
			return err
		}
		if err := r.WarehouseStock.Upsert(dest); err != nil {
			return err
		}
	}
	return nil
}

func (uc *TransferUseCase) moveFinishedGoods(r LedgerRepos, transfer *entity.StockTransfer) error {
	for _, line := range transfer.Lines {
		keys := []domaininv.BalanceKey{
			{Kind: domaininv.BalanceKindFinishedGood, OwnerID: transfer.SourceWarehouseID, ItemID: line.FinishedGoodID},
			{Kind: domaininv.BalanceKindFinishedGood, OwnerID: transfer.DestinationWarehouseID, ItemID: line.FinishedGoodID},
		}
		domaininv.SortKeys(keys)

		locked := make(map[string]*entity.FinishedGoodsInventory, 2)
		for _, k := range keys {
			stock, err := r.FinishedStock.GetForUpdate(k.OwnerID, k.ItemID)
			if err == domain.ErrNotFound {
				if k.OwnerID == transfer.SourceWarehouseID {
					return domain.ErrInsufficientStock
				}
				stock = &entity.FinishedGoodsInventory{
					WarehouseID:     k.OwnerID,
					FinishedGoodID:  k.ItemID,
					CurrentQuantity: decimal.Zero,
					UnitOfMeasure:   line.UnitOfMeasure,
				}
			} else if err != nil {
				return err
			}
			locked[k.OwnerID] = stock
		}

		source := locked[transfer.SourceWarehouseID]
		dest := locked[transfer.DestinationWarehouseID]
		if source.CurrentQuantity.LessThan(line.Quantity) {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		source.CurrentQuantity = source.CurrentQuantity.Sub(line.Quantity)
		source.LastUpdated = now
		dest.CurrentQuantity = dest.CurrentQuantity.Add(line.Quantity)
		dest.LastUpdated = now
		if err := r.FinishedStock.Upsert(source); err != nil {
			return err
		}
		if err := r.FinishedStock.Upsert(dest); err != nil {
			return err
		}
	}
	return nil
}
