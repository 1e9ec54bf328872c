package checks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/application/threshold"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// AuditUseCase auditoría ciega de inventario de contratista.
//
// Máquina de estados lineal, sin retrocesos:
//
//	IN_PROGRESS -> SUBMITTED -> ANALYZED -> CLOSED
//
// Mientras está IN_PROGRESS el auditor solo ve material, unidad y su propio
// conteo; el esperado se calcula recién en el análisis, después del envío
// irrevocable. Aceptar los conteos (opcional, en ANALYZED) corrige los saldos
// y estampa resolved_at, que fija la apertura del siguiente cálculo de esperado.
type AuditUseCase struct {
	txRunner       appinv.TxRunner
	thresholds     *threshold.Resolver
	contractorRepo repository.ContractorRepository
	materialRepo   repository.MaterialRepository
	checkRepo      repository.CheckRepository
	epoch          time.Time
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(
	txRunner appinv.TxRunner,
	thresholds *threshold.Resolver,
	contractorRepo repository.ContractorRepository,
	materialRepo repository.MaterialRepository,
	checkRepo repository.CheckRepository,
	epoch time.Time,
) *AuditUseCase {
	return &AuditUseCase{
		txRunner:       txRunner,
		thresholds:     thresholds,
		contractorRepo: contractorRepo,
		materialRepo:   materialRepo,
		checkRepo:      checkRepo,
		epoch:          epoch,
	}
}

// StartAuditInput entrada para abrir una auditoría.
type StartAuditInput struct {
	ContractorID string
	AuditType    string // SCHEDULED | SURPRISE | FOLLOW_UP
	CheckDate    time.Time
	Auditor      string
	MaterialIDs  []string // vacío = todos los materiales con saldo positivo
	Notes        string
}

// Start abre la auditoría en IN_PROGRESS y genera las líneas a contar. Solo
// puede haber una auditoría abierta por contratista.
func (uc *AuditUseCase) Start(ctx context.Context, input StartAuditInput) (*entity.InventoryCheck, []entity.InventoryCheckLine, error) {
	if input.ContractorID == "" || input.Auditor == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	switch input.AuditType {
	case entity.AuditTypeScheduled, entity.AuditTypeSurprise, entity.AuditTypeFollowUp:
	default:
		return nil, nil, domain.ErrInvalidInput
	}
	contractor, err := uc.contractorRepo.GetByID(input.ContractorID)
	if err != nil {
		return nil, nil, err
	}
	if !contractor.IsActive {
		return nil, nil, domain.ErrInvalidInput
	}
	if _, err := uc.checkRepo.FindOpenByContractor(input.ContractorID, entity.CheckKindAudit); err == nil {
		return nil, nil, domain.ErrDuplicate
	} else if err != domain.ErrNotFound {
		return nil, nil, err
	}

	checkDate := input.CheckDate
	if checkDate.IsZero() {
		checkDate = time.Now()
	}
	now := time.Now()
	check := &entity.InventoryCheck{
		ID:           uuid.New().String(),
		Kind:         entity.CheckKindAudit,
		ContractorID: input.ContractorID,
		CheckDate:    checkDate,
		CountedBy:    input.Auditor,
		AuditType:    input.AuditType,
		Status:       entity.CheckStatusInProgress,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var lines []entity.InventoryCheckLine
	err = uc.txRunner.Run(ctx, func(r appinv.LedgerRepos) error {
		materialIDs := input.MaterialIDs
		if len(materialIDs) == 0 {
			balances, err := r.ContractorStock.ListPositiveByContractor(input.ContractorID)
			if err != nil {
				return err
			}
			for _, b := range balances {
				materialIDs = append(materialIDs, b.MaterialID)
			}
		}
		if len(materialIDs) == 0 {
			return domain.ErrInvalidInput
		}

		for _, materialID := range materialIDs {
			material, err := uc.materialRepo.GetByID(materialID)
			if err != nil {
				return err
			}
			// Solo identidad y unidad: los campos calculados nacen nil y así
			// se quedan hasta el análisis.
			lines = append(lines, entity.InventoryCheckLine{
				ID:            uuid.New().String(),
				CheckID:       check.ID,
				MaterialID:    materialID,
				UnitOfMeasure: material.Unit,
				CreatedAt:     now,
			})
		}

		number, err := appinv.NextDocNumber(r.Sequences, appinv.PrefixAudit, checkDate.Year())
		if err != nil {
			return err
		}
		check.CheckNumber = number
		if err := r.Checks.Create(check); err != nil {
			return err
		}
		return r.Checks.CreateLines(lines)
	})
	if err != nil {
		return nil, nil, err
	}
	return check, lines, nil
}

// EnterCount registra (o corrige) el conteo físico de un material mientras la
// auditoría sigue IN_PROGRESS. Idempotente: volver a contar sobreescribe.
func (uc *AuditUseCase) EnterCount(ctx context.Context, checkID, materialID string, count decimal.Decimal, notes string) error {
	if checkID == "" || materialID == "" {
		return domain.ErrInvalidInput
	}
	if count.IsNegative() {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r appinv.LedgerRepos) error {
		check, err := r.Checks.GetByIDForUpdate(checkID)
		if err != nil {
			return err
		}
		if check.Kind != entity.CheckKindAudit || check.Status != entity.CheckStatusInProgress {
			return domain.ErrInvalidState
		}
		lines, err := r.Checks.ListLines(checkID)
		if err != nil {
			return err
		}
		for i := range lines {
			if lines[i].MaterialID != materialID {
				continue
			}
			c := count
			lines[i].PhysicalCount = &c
			lines[i].CounterNotes = notes
			lines[i].UpdatedAt = time.Now()
			return r.Checks.UpdateLine(&lines[i])
		}
		return domain.ErrNotFound
	})
}

// Submit envío irrevocable: exige todas las líneas contadas y pasa a SUBMITTED.
// Desde aquí el auditor ya no puede tocar los conteos.
func (uc *AuditUseCase) Submit(ctx context.Context, checkID string) error {
	if checkID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r appinv.LedgerRepos) error {
		check, err := r.Checks.GetByIDForUpdate(checkID)
		if err != nil {
			return err
		}
		if check.Kind != entity.CheckKindAudit || check.Status != entity.CheckStatusInProgress {
			return domain.ErrInvalidState
		}
		lines, err := r.Checks.ListLines(checkID)
		if err != nil {
			return err
		}
		for i := range lines {
			if lines[i].PhysicalCount == nil {
				return domain.ErrIncompleteCheck
			}
		}
		now := time.Now()
		check.Status = entity.CheckStatusSubmitted
		check.SubmittedAt = &now
		check.UpdatedAt = now
		return r.Checks.UpdateHeader(check)
	})
}

// Analyze SUBMITTED -> ANALYZED: calcula esperado y varianza por línea con los
// umbrales vigentes y levanta anomalías de faltante.
func (uc *AuditUseCase) Analyze(ctx context.Context, checkID string) error {
	if checkID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r appinv.LedgerRepos) error {
		check, err := r.Checks.GetByIDForUpdate(checkID)
		if err != nil {
			return err
		}
		if check.Kind != entity.CheckKindAudit || check.Status != entity.CheckStatusSubmitted {
			return domain.ErrInvalidState
		}
		lines, err := r.Checks.ListLines(checkID)
		if err != nil {
			return err
		}
		if err := analyzeLines(r, uc.thresholds, uc.epoch, check, lines); err != nil {
			return err
		}
		now := time.Now()
		check.Status = entity.CheckStatusAnalyzed
		check.AnalyzedAt = &now
		check.UpdatedAt = now
		return r.Checks.UpdateHeader(check)
	})
}

// AcceptCounts corrige los saldos del contratista a los conteos físicos y
// estampa resolved_at. Solo en ANALYZED; el cierre es aparte.
func (uc *AuditUseCase) AcceptCounts(ctx context.Context, checkID, approvedBy string) error {
	if checkID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r appinv.LedgerRepos) error {
		check, err := r.Checks.GetByIDForUpdate(checkID)
		if err != nil {
			return err
		}
		if check.Kind != entity.CheckKindAudit || check.Status != entity.CheckStatusAnalyzed {
			return domain.ErrInvalidState
		}
		if check.ResolvedAt != nil {
			return domain.ErrInvalidState
		}
		lines, err := r.Checks.ListLines(checkID)
		if err != nil {
			return err
		}
		if err := applyCounts(r, check, lines, entity.AdjustmentTypeAuditCorrection, approvedBy); err != nil {
			return err
		}
		if err := resolveLineAnomalies(r, lines, approvedBy, "conteo aceptado "+check.CheckNumber); err != nil {
			return err
		}
		now := time.Now()
		check.ResolvedAt = &now
		check.UpdatedAt = now
		return r.Checks.UpdateHeader(check)
	})
}

// Close ANALYZED -> CLOSED. Cerrar sin aceptar conteos deja los saldos como
// estaban y NO estampa resolved_at: la próxima ventana de esperado sigue
// anclada al último conteo realmente aceptado.
func (uc *AuditUseCase) Close(ctx context.Context, checkID, reviewedBy string) error {
	if checkID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r appinv.LedgerRepos) error {
		check, err := r.Checks.GetByIDForUpdate(checkID)
		if err != nil {
			return err
		}
		if check.Kind != entity.CheckKindAudit || check.Status != entity.CheckStatusAnalyzed {
			return domain.ErrInvalidState
		}
		now := time.Now()
		check.Status = entity.CheckStatusClosed
		check.ReviewedBy = reviewedBy
		check.ReviewedAt = &now
		check.UpdatedAt = now
		return r.Checks.UpdateHeader(check)
	})
}

// VisibleLines líneas del conteo con la política de ceguera aplicada: antes de
// ANALYZED los campos calculados se redactan aunque existieran. Es la única
// vista que deben usar los handlers del auditor.
func (uc *AuditUseCase) VisibleLines(checkID string) (*entity.InventoryCheck, []entity.InventoryCheckLine, error) {
	check, err := uc.checkRepo.GetByID(checkID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := uc.checkRepo.ListLines(checkID)
	if err != nil {
		return nil, nil, err
	}
	if policyFor(check.Kind).BlindUntilSubmit && check.Status != entity.CheckStatusAnalyzed && check.Status != entity.CheckStatusClosed {
		for i := range lines {
			lines[i].ExpectedQuantity = nil
			lines[i].Variance = nil
			lines[i].VariancePct = nil
			lines[i].ThresholdUsed = nil
			lines[i].IsAnomaly = nil
			lines[i].AnomalyID = ""
		}
	}
	return check, lines, nil
}
