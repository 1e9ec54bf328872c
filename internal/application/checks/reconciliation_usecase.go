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

// Periodos de auto-reporte.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAdHoc   = "ad_hoc"
)

// ReconciliationUseCase auto-reporte de inventario del contratista.
//
// A diferencia de la auditoría, no hay fase ciega: el conteo entra completo y
// se analiza en el mismo envío, con varianza visible de inmediato. La revisión
// decide el destino:
//
//	SUBMITTED -> ACCEPTED | DISPUTED
//
// ACCEPTED resuelve las anomalías, estampa resolved_at y, si el revisor lo
// pide, corrige los saldos a lo contado; DISPUTED es terminal y no toca nada
// (el faltante queda en manos de las anomalías, que quedan anotadas).
type ReconciliationUseCase struct {
	txRunner       appinv.TxRunner
	thresholds     *threshold.Resolver
	contractorRepo repository.ContractorRepository
	materialRepo   repository.MaterialRepository
	checkRepo      repository.CheckRepository
	epoch          time.Time
}

// NewReconciliationUseCase construye el caso de uso.
func NewReconciliationUseCase(
	txRunner appinv.TxRunner,
	thresholds *threshold.Resolver,
	contractorRepo repository.ContractorRepository,
	materialRepo repository.MaterialRepository,
	checkRepo repository.CheckRepository,
	epoch time.Time,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		txRunner:       txRunner,
		thresholds:     thresholds,
		contractorRepo: contractorRepo,
		materialRepo:   materialRepo,
		checkRepo:      checkRepo,
		epoch:          epoch,
	}
}

// ReconciliationLineInput conteo reportado de un material.
type ReconciliationLineInput struct {
	MaterialID    string
	PhysicalCount decimal.Decimal
	Notes         string
}

// SubmitInput auto-reporte completo de un periodo.
type SubmitInput struct {
	ContractorID string
	PeriodType   string // weekly | monthly | ad_hoc
	PeriodStart  time.Time
	PeriodEnd    time.Time
	CheckDate    time.Time
	ReportedBy   string
	Notes        string
	Lines        []ReconciliationLineInput
}

// Submit crea el conteo ya enviado y lo analiza en la misma transacción.
func (uc *ReconciliationUseCase) Submit(ctx context.Context, input SubmitInput) (*entity.InventoryCheck, []entity.InventoryCheckLine, error) {
	if input.ContractorID == "" || len(input.Lines) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	switch input.PeriodType {
	case PeriodWeekly, PeriodMonthly, PeriodAdHoc:
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

	checkDate := input.CheckDate
	if checkDate.IsZero() {
		checkDate = time.Now()
	}
	now := time.Now()
	check := &entity.InventoryCheck{
		ID:           uuid.New().String(),
		Kind:         entity.CheckKindSelfReport,
		ContractorID: input.ContractorID,
		CheckDate:    checkDate,
		CountedBy:    input.ReportedBy,
		PeriodType:   input.PeriodType,
		Status:       entity.CheckStatusSubmitted,
		SubmittedAt:  &now,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !input.PeriodStart.IsZero() {
		start := input.PeriodStart
		check.PeriodStart = &start
	}
	if !input.PeriodEnd.IsZero() {
		end := input.PeriodEnd
		check.PeriodEnd = &end
	}

	var lines []entity.InventoryCheckLine
	seen := make(map[string]bool, len(input.Lines))
	for _, in := range input.Lines {
		if in.MaterialID == "" || in.PhysicalCount.IsNegative() {
			return nil, nil, domain.ErrInvalidInput
		}
		if seen[in.MaterialID] {
			return nil, nil, domain.ErrDuplicate
		}
		seen[in.MaterialID] = true
		material, err := uc.materialRepo.GetByID(in.MaterialID)
		if err != nil {
			return nil, nil, err
		}
		count := in.PhysicalCount
		lines = append(lines, entity.InventoryCheckLine{
			ID:            uuid.New().String(),
			CheckID:       check.ID,
			MaterialID:    in.MaterialID,
			UnitOfMeasure: material.Unit,
			PhysicalCount: &count,
			CounterNotes:  in.Notes,
			CreatedAt:     now,
		})
	}

	err = uc.txRunner.Run(ctx, func(r appinv.LedgerRepos) error {
		number, err := appinv.NextDocNumber(r.Sequences, appinv.PrefixReconciliation, checkDate.Year())
		if err != nil {
			return err
		}
		check.CheckNumber = number
		if err := r.Checks.Create(check); err != nil {
			return err
		}
		if err := r.Checks.CreateLines(lines); err != nil {
			return err
		}
		// Análisis inmediato: la varianza es visible desde el envío.
		return analyzeLines(r, uc.thresholds, uc.epoch, check, lines)
	})
	if err != nil {
		return nil, nil, err
	}
	return check, lines, nil
}

// ReviewInput decisión del revisor sobre un auto-reporte. AdjustInventory
// controla si aceptar además corrige los saldos a lo contado; aceptar sin
// ajustar deja los saldos como están pero igual resuelve las anomalías y fija
// el conteo como línea base.
type ReviewInput struct {
	Accept          bool
	AdjustInventory bool
	ReviewedBy      string
	Notes           string
}

// Review SUBMITTED -> ACCEPTED | DISPUTED. Aceptar resuelve las anomalías del
// conteo y estampa resolved_at; los saldos solo se corrigen (con ajustes de
// rastro) si AdjustInventory. Disputar no toca saldos: anota la disputa en las
// anomalías abiertas, que siguen abiertas para investigación.
func (uc *ReconciliationUseCase) Review(ctx context.Context, checkID string, input ReviewInput) error {
	if checkID == "" || input.ReviewedBy == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r appinv.LedgerRepos) error {
		check, err := r.Checks.GetByIDForUpdate(checkID)
		if err != nil {
			return err
		}
		if check.Kind != entity.CheckKindSelfReport || check.Status != entity.CheckStatusSubmitted {
			return domain.ErrInvalidState
		}

		now := time.Now()
		if input.Accept {
			lines, err := r.Checks.ListLines(checkID)
			if err != nil {
				return err
			}
			if input.AdjustInventory {
				if err := applyCounts(r, check, lines, entity.AdjustmentTypeReconCorrection, input.ReviewedBy); err != nil {
					return err
				}
			}
			if err := resolveLineAnomalies(r, lines, input.ReviewedBy, "auto-reporte aceptado "+check.CheckNumber); err != nil {
				return err
			}
			check.Status = entity.CheckStatusAccepted
			check.ResolvedAt = &now
		} else {
			check.Status = entity.CheckStatusDisputed
			anomalies, err := r.Anomalies.ListByCheck(checkID)
			if err != nil {
				return err
			}
			for i := range anomalies {
				a := anomalies[i]
				if a.Resolved {
					continue
				}
				note := "auto-reporte disputado"
				if input.Notes != "" {
					note += ": " + input.Notes
				}
				if a.Notes != "" {
					a.Notes += "\n"
				}
				a.Notes += note
				if err := r.Anomalies.Update(&a); err != nil {
					return err
				}
			}
		}
		check.ReviewedBy = input.ReviewedBy
		check.ReviewedAt = &now
		if input.Notes != "" {
			check.Notes = input.Notes
		}
		check.UpdatedAt = now
		return r.Checks.UpdateHeader(check)
	})
}
