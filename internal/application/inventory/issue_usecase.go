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
	"github.com/jhoicas/ObraStock-api/pkg/logger"
)

// IssueUseCase entrega material de una bodega a un contratista de forma
// atómica: descuenta bodega, acredita contratista y registra la entrega en la
// misma transacción, bajo lock de fila.
type IssueUseCase struct {
	txRunner       TxRunner
	conversions    *conversion.Service
	materialRepo   repository.MaterialRepository
	warehouseRepo  repository.WarehouseRepository
	contractorRepo repository.ContractorRepository
	log            *logger.Logger
}

// NewIssueUseCase construye el caso de uso.
func NewIssueUseCase(
	txRunner TxRunner,
	conversions *conversion.Service,
	materialRepo repository.MaterialRepository,
	warehouseRepo repository.WarehouseRepository,
	contractorRepo repository.ContractorRepository,
	log *logger.Logger,
) *IssueUseCase {
	return &IssueUseCase{
		txRunner:       txRunner,
		conversions:    conversions,
		materialRepo:   materialRepo,
		warehouseRepo:  warehouseRepo,
		contractorRepo: contractorRepo,
		log:            log,
	}
}

// IssueInput entrada para entregar material.
type IssueInput struct {
	WarehouseID   string
	ContractorID  string
	MaterialID    string
	Quantity      decimal.Decimal
	UnitOfMeasure string // unidad en que se pide; puede diferir de la canónica
	IssuedDate    time.Time
	IssuedBy      string
	Notes         string
}

// Issue valida, convierte a unidades y ejecuta la entrega transaccional.
// El descuento de bodega se hace en la unidad de almacenamiento de la bodega;
// el crédito al contratista siempre en la unidad canónica del material.
func (uc *IssueUseCase) Issue(ctx context.Context, input IssueInput) (*entity.MaterialIssuance, error) {
	if input.WarehouseID == "" || input.ContractorID == "" || input.MaterialID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	material, err := uc.materialRepo.GetByID(input.MaterialID)
	if err != nil {
		return nil, err
	}
	if !material.IsActive {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !warehouse.IsActive || !warehouse.CanHoldMaterials {
		return nil, domain.ErrInvalidInput
	}
	contractor, err := uc.contractorRepo.GetByID(input.ContractorID)
	if err != nil {
		return nil, err
	}
	if !contractor.IsActive {
		return nil, domain.ErrInvalidInput
	}

	unit := conversion.Normalize(input.UnitOfMeasure)
	if unit == "" {
		unit = conversion.Normalize(material.Unit)
	}
	baseQty, err := uc.conversions.Convert(material.ID, input.Quantity, unit, material.Unit)
	if err != nil {
		return nil, err
	}

	issuedDate := input.IssuedDate
	if issuedDate.IsZero() {
		issuedDate = time.Now()
	}

	issuance := &entity.MaterialIssuance{
		ID:                 uuid.New().String(),
		WarehouseID:        input.WarehouseID,
		ContractorID:       input.ContractorID,
		MaterialID:         input.MaterialID,
		Quantity:           input.Quantity,
		UnitOfMeasure:      unit,
		QuantityInBaseUnit: baseQty,
		BaseUnit:           conversion.Normalize(material.Unit),
		IssuedDate:         issuedDate,
		IssuedBy:           input.IssuedBy,
		Notes:              input.Notes,
		CreatedAt:          time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		// Orden global de locks: bodega antes que contratista.
		stock, err := r.WarehouseStock.GetForUpdate(input.WarehouseID, input.MaterialID)
		if err == domain.ErrNotFound {
			return domain.ErrInsufficientStock
		}
		if err != nil {
			return err
		}

		// El saldo de bodega puede estar en otra unidad que la pedida.
		deduct, err := uc.conversions.Convert(material.ID, input.Quantity, unit, stock.UnitOfMeasure)
		if err != nil {
			return err
		}
		if stock.CurrentQuantity.LessThan(deduct) {
			return domain.ErrInsufficientStock
		}
		stock.CurrentQuantity = stock.CurrentQuantity.Sub(deduct)
		stock.LastUpdated = time.Now()
		if err := r.WarehouseStock.Upsert(stock); err != nil {
			return err
		}
		if stock.IsBelowReorderPoint() {
			uc.log.Warn().
				Str("warehouse_id", stock.WarehouseID).
				Str("material_id", stock.MaterialID).
				Str("current_quantity", stock.CurrentQuantity.String()).
				Str("reorder_point", stock.ReorderPoint.String()).
				Msg("saldo de bodega bajo el punto de reorden")
		}

		balance, err := r.ContractorStock.GetForUpdate(input.ContractorID, input.MaterialID)
		if err == domain.ErrNotFound {
			balance = &entity.ContractorInventory{
				ContractorID: input.ContractorID,
				MaterialID:   input.MaterialID,
				Quantity:     decimal.Zero,
			}
		} else if err != nil {
			return err
		}
		balance.Quantity = balance.Quantity.Add(baseQty)
		balance.LastUpdated = time.Now()
		if err := r.ContractorStock.Upsert(balance); err != nil {
			return err
		}

		number, err := NextDocNumber(r.Sequences, PrefixIssuance, issuedDate.Year())
		if err != nil {
			return err
		}
		issuance.IssuanceNumber = number
		return r.Issuances.Create(issuance)
	})
	if err != nil {
		return nil, err
	}
	return issuance, nil
}
