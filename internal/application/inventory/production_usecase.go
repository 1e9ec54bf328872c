package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/ObraStock-api/internal/domain/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// ProductionUseCase reporte de producción de un contratista. Explota el BOM del
// producto terminado en consumos de material y descuenta los saldos del
// contratista. Un consumo que deja el saldo negativo NO se rechaza: se registra
// y levanta una anomalía negative_balance para investigación — el faltante es
// información, no un error de captura.
type ProductionUseCase struct {
	txRunner         TxRunner
	contractorRepo   repository.ContractorRepository
	finishedGoodRepo repository.FinishedGoodRepository
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(
	txRunner TxRunner,
	contractorRepo repository.ContractorRepository,
	finishedGoodRepo repository.FinishedGoodRepository,
) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:         txRunner,
		contractorRepo:   contractorRepo,
		finishedGoodRepo: finishedGoodRepo,
	}
}

// ReportProductionInput entrada del reporte de producción.
type ReportProductionInput struct {
	ContractorID   string
	FinishedGoodID string
	Quantity       decimal.Decimal
	ReportedBy     string
	ProducedAt     time.Time
	Notes          string
}

// ReportProduction registra la producción y sus consumos derivados del BOM.
func (uc *ProductionUseCase) ReportProduction(ctx context.Context, input ReportProductionInput) (*entity.ProductionRecord, error) {
	if input.ContractorID == "" || input.FinishedGoodID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	contractor, err := uc.contractorRepo.GetByID(input.ContractorID)
	if err != nil {
		return nil, err
	}
	if !contractor.IsActive {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.finishedGoodRepo.GetByID(input.FinishedGoodID); err != nil {
		return nil, err
	}
	bom, err := uc.finishedGoodRepo.ListBOM(input.FinishedGoodID)
	if err != nil {
		return nil, err
	}
	if len(bom) == 0 {
		return nil, domain.ErrInvalidInput
	}

	producedAt := input.ProducedAt
	if producedAt.IsZero() {
		producedAt = time.Now()
	}
	record := &entity.ProductionRecord{
		ID:             uuid.New().String(),
		ContractorID:   input.ContractorID,
		FinishedGoodID: input.FinishedGoodID,
		Quantity:       input.Quantity,
		ReportedBy:     input.ReportedBy,
		Notes:          input.Notes,
		ProducedAt:     producedAt,
		CreatedAt:      time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		if err := r.Productions.Create(record); err != nil {
			return err
		}

		// Locks de saldo de contratista en orden global (misma clase: por ítem).
		keys := make([]domaininv.BalanceKey, 0, len(bom))
		perMaterial := make(map[string]decimal.Decimal, len(bom))
		for _, item := range bom {
			// QuantityPerUnit ya viene en la unidad canónica del material.
			perMaterial[item.MaterialID] = item.QuantityPerUnit.Mul(input.Quantity)
			keys = append(keys, domaininv.BalanceKey{
				Kind: domaininv.BalanceKindContractor, OwnerID: input.ContractorID, ItemID: item.MaterialID,
			})
		}
		domaininv.SortKeys(keys)

		for _, k := range keys {
			consumed := perMaterial[k.ItemID]
			balance, err := r.ContractorStock.GetForUpdate(input.ContractorID, k.ItemID)
			if err == domain.ErrNotFound {
				balance = &entity.ContractorInventory{
					ContractorID: input.ContractorID,
					MaterialID:   k.ItemID,
					Quantity:     decimal.Zero,
				}
			} else if err != nil {
				return err
			}
			balance.Quantity = balance.Quantity.Sub(consumed)
			balance.LastUpdated = time.Now()
			if err := r.ContractorStock.Upsert(balance); err != nil {
				return err
			}

			if err := r.Consumptions.Create(&entity.Consumption{
				ID:                 uuid.New().String(),
				ContractorID:       input.ContractorID,
				MaterialID:         k.ItemID,
				ProductionRecordID: record.ID,
				Quantity:           consumed,
				ConsumedAt:         producedAt,
				CreatedAt:          time.Now(),
			}); err != nil {
				return err
			}

			if balance.Quantity.IsNegative() {
				if err := r.Anomalies.Create(&entity.Anomaly{
					ID:           uuid.New().String(),
					ContractorID: input.ContractorID,
					MaterialID:   k.ItemID,
					ExpectedQty:  decimal.Zero,
					ActualQty:    balance.Quantity,
					Variance:     balance.Quantity,
					VariancePct:  decimal.Zero,
					AnomalyType:  entity.AnomalyTypeNegativeBalance,
					Notes:        "consumo reportado por encima del material entregado",
					CreatedAt:    time.Now(),
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
