package checks

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/application/threshold"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/ObraStock-api/internal/domain/inventory"
)

// policyFor política de la clase de conteo: auditoría es ciega y solo castiga
// faltantes; el auto-reporte es visible y castiga ambas direcciones.
func policyFor(kind string) domaininv.CheckPolicy {
	if kind == entity.CheckKindAudit {
		return domaininv.AuditPolicy
	}
	return domaininv.ReconciliationPolicy
}

func anomalyTypeFor(kind string, variance decimal.Decimal) string {
	if kind == entity.CheckKindAudit {
		return entity.AnomalyTypeAuditShortage
	}
	if variance.IsNegative() {
		return entity.AnomalyTypeReconShortage
	}
	return entity.AnomalyTypeReconExcess
}

// analyzeLines calcula esperado, varianza y umbral por línea y levanta las
// anomalías que correspondan según la política. Corre dentro de la transacción
// del conteo: el esperado se congela con los mismos repos tx que verán los
// ajustes posteriores.
func analyzeLines(r appinv.LedgerRepos, resolver *threshold.Resolver, epoch time.Time, check *entity.InventoryCheck, lines []entity.InventoryCheckLine) error {
	calc := appinv.NewExpectedCalculator(r.Issuances, r.Consumptions, r.Rejections, r.Checks, epoch)
	policy := policyFor(check.Kind)

	for i := range lines {
		line := &lines[i]
		if line.PhysicalCount == nil {
			return domain.ErrIncompleteCheck
		}

		expected, err := calc.Expected(check.ContractorID, line.MaterialID, check.CheckDate)
		if err != nil {
			return err
		}
		resolution, err := resolver.Resolve(check.ContractorID, line.MaterialID)
		if err != nil {
			return err
		}

		variance, pct := domaininv.Variance(*line.PhysicalCount, expected.Expected)
		isAnomaly := policy.IsAnomaly(variance, pct, resolution.ThresholdPct)

		exp := expected.Expected
		line.ExpectedQuantity = &exp
		line.Variance = &variance
		line.VariancePct = &pct
		line.ThresholdUsed = &resolution.ThresholdPct
		line.IsAnomaly = &isAnomaly
		line.UpdatedAt = time.Now()

		if isAnomaly {
			anomaly := &entity.Anomaly{
				ID:           uuid.New().String(),
				ContractorID: check.ContractorID,
				MaterialID:   line.MaterialID,
				CheckID:      check.ID,
				CheckLineID:  line.ID,
				ExpectedQty:  expected.Expected,
				ActualQty:    *line.PhysicalCount,
				Variance:     variance,
				VariancePct:  pct,
				AnomalyType:  anomalyTypeFor(check.Kind, variance),
				CreatedAt:    time.Now(),
			}
			if err := r.Anomalies.Create(anomaly); err != nil {
				return err
			}
			line.AnomalyID = anomaly.ID
		}
		if err := r.Checks.UpdateLine(line); err != nil {
			return err
		}
	}
	return nil
}

// applyCounts acepta los conteos en el ledger: cada saldo de contratista se
// corrige al conteo físico bajo lock, con su ajuste de rastro. El orden de los
// locks sigue el orden global (misma clase, por material).
func applyCounts(r appinv.LedgerRepos, check *entity.InventoryCheck, lines []entity.InventoryCheckLine, adjustmentType, approvedBy string) error {
	sorted := make([]entity.InventoryCheckLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MaterialID < sorted[j].MaterialID })

	now := time.Now()
	for i := range sorted {
		line := &sorted[i]
		if line.PhysicalCount == nil {
			return domain.ErrIncompleteCheck
		}

		balance, err := r.ContractorStock.GetForUpdate(check.ContractorID, line.MaterialID)
		if err == domain.ErrNotFound {
			balance = &entity.ContractorInventory{
				ContractorID: check.ContractorID,
				MaterialID:   line.MaterialID,
				Quantity:     decimal.Zero,
			}
		} else if err != nil {
			return err
		}

		before := balance.Quantity
		after := *line.PhysicalCount
		if before.Equal(after) {
			continue
		}

		number, err := appinv.NextDocNumber(r.Sequences, appinv.PrefixAdjustment, now.Year())
		if err != nil {
			return err
		}
		if err := r.Adjustments.Create(&entity.InventoryAdjustment{
			ID:               uuid.New().String(),
			AdjustmentNumber: number,
			ContractorID:     check.ContractorID,
			MaterialID:       line.MaterialID,
			CheckLineID:      line.ID,
			AdjustmentType:   adjustmentType,
			QuantityBefore:   before,
			QuantityAfter:    after,
			AdjustmentQty:    after.Sub(before),
			UnitOfMeasure:    line.UnitOfMeasure,
			AdjustmentDate:   now,
			Reason:           "conteo aceptado " + check.CheckNumber,
			ApprovedBy:       approvedBy,
			ApprovedAt:       &now,
			CreatedAt:        now,
		}); err != nil {
			return err
		}

		balance.Quantity = after
		balance.LastUpdated = now
		if err := r.ContractorStock.Upsert(balance); err != nil {
			return err
		}
	}
	return nil
}

// resolveLineAnomalies marca resueltas las anomalías enlazadas a las líneas de
// un conteo aceptado. Idempotente: una anomalía ya resuelta queda intacta.
func resolveLineAnomalies(r appinv.LedgerRepos, lines []entity.InventoryCheckLine, resolvedBy, note string) error {
	now := time.Now()
	for i := range lines {
		if lines[i].AnomalyID == "" {
			continue
		}
		anomaly, err := r.Anomalies.GetByID(lines[i].AnomalyID)
		if err != nil {
			return err
		}
		if anomaly.Resolved {
			continue
		}
		anomaly.Resolved = true
		anomaly.ResolvedBy = resolvedBy
		anomaly.ResolvedAt = &now
		anomaly.ResolutionNotes = note
		if err := r.Anomalies.Update(anomaly); err != nil {
			return err
		}
	}
	return nil
}
