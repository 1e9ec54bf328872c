package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
)

// StartAuditRequest apertura de auditoría ciega.
type StartAuditRequest struct {
	ContractorID string   `json:"contractor_id"`
	AuditType    string   `json:"audit_type,omitempty"`
	CheckDate    string   `json:"check_date,omitempty"`
	MaterialIDs  []string `json:"material_ids,omitempty"` // vacío = saldos positivos
	Notes        string   `json:"notes,omitempty"`
}

// EnterCountRequest conteo físico de un material.
type EnterCountRequest struct {
	MaterialID    string          `json:"material_id"`
	PhysicalCount decimal.Decimal `json:"physical_count"`
	Notes         string          `json:"notes,omitempty"`
}

// ReconciliationLineRequest conteo auto-reportado de un material.
type ReconciliationLineRequest struct {
	MaterialID    string          `json:"material_id"`
	PhysicalCount decimal.Decimal `json:"physical_count"`
	Notes         string          `json:"notes,omitempty"`
}

// SubmitReconciliationRequest auto-reporte de un periodo.
type SubmitReconciliationRequest struct {
	ContractorID string                      `json:"contractor_id"`
	PeriodType   string                      `json:"period_type"`
	PeriodStart  string                      `json:"period_start"`
	PeriodEnd    string                      `json:"period_end"`
	CheckDate    string                      `json:"check_date,omitempty"`
	Notes        string                      `json:"notes,omitempty"`
	Lines        []ReconciliationLineRequest `json:"lines"`
}

// ReviewRequest decisión del revisor sobre un auto-reporte. adjust_inventory
// indica si al aceptar también se corrigen los saldos a lo contado.
type ReviewRequest struct {
	Accept          bool   `json:"accept"`
	AdjustInventory bool   `json:"adjust_inventory"`
	Notes           string `json:"notes,omitempty"`
}

// CheckResponse cabecera de un conteo.
type CheckResponse struct {
	ID           string     `json:"id"`
	CheckNumber  string     `json:"check_number"`
	Kind         string     `json:"kind"`
	ContractorID string     `json:"contractor_id"`
	CheckDate    time.Time  `json:"check_date"`
	CountedBy    string     `json:"counted_by"`
	AuditType    string     `json:"audit_type,omitempty"`
	PeriodType   string     `json:"period_type,omitempty"`
	PeriodStart  *time.Time `json:"period_start,omitempty"`
	PeriodEnd    *time.Time `json:"period_end,omitempty"`
	Status       string     `json:"status"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	AnalyzedAt   *time.Time `json:"analyzed_at,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// FromCheck convierte la entidad a respuesta.
func FromCheck(c *entity.InventoryCheck) CheckResponse {
	return CheckResponse{
		ID:           c.ID,
		CheckNumber:  c.CheckNumber,
		Kind:         c.Kind,
		ContractorID: c.ContractorID,
		CheckDate:    c.CheckDate,
		CountedBy:    c.CountedBy,
		AuditType:    c.AuditType,
		PeriodType:   c.PeriodType,
		PeriodStart:  c.PeriodStart,
		PeriodEnd:    c.PeriodEnd,
		Status:       c.Status,
		SubmittedAt:  c.SubmittedAt,
		AnalyzedAt:   c.AnalyzedAt,
		ResolvedAt:   c.ResolvedAt,
		Notes:        c.Notes,
	}
}

// CheckLineResponse línea de conteo. Los campos calculados son punteros: antes
// del análisis (o bajo política ciega) viajan como null.
type CheckLineResponse struct {
	ID               string           `json:"id"`
	MaterialID       string           `json:"material_id"`
	UnitOfMeasure    string           `json:"unit_of_measure"`
	PhysicalCount    *decimal.Decimal `json:"physical_count,omitempty"`
	CounterNotes     string           `json:"counter_notes,omitempty"`
	ExpectedQuantity *decimal.Decimal `json:"expected_quantity,omitempty"`
	Variance         *decimal.Decimal `json:"variance,omitempty"`
	VariancePct      *decimal.Decimal `json:"variance_pct,omitempty"`
	ThresholdUsed    *decimal.Decimal `json:"threshold_used,omitempty"`
	IsAnomaly        *bool            `json:"is_anomaly,omitempty"`
	AnomalyID        string           `json:"anomaly_id,omitempty"`
}

// FromCheckLine convierte la entidad a respuesta.
func FromCheckLine(l *entity.InventoryCheckLine) CheckLineResponse {
	return CheckLineResponse{
		ID:               l.ID,
		MaterialID:       l.MaterialID,
		UnitOfMeasure:    l.UnitOfMeasure,
		PhysicalCount:    l.PhysicalCount,
		CounterNotes:     l.CounterNotes,
		ExpectedQuantity: l.ExpectedQuantity,
		Variance:         l.Variance,
		VariancePct:      l.VariancePct,
		ThresholdUsed:    l.ThresholdUsed,
		IsAnomaly:        l.IsAnomaly,
		AnomalyID:        l.AnomalyID,
	}
}

// CheckWithLinesResponse cabecera más líneas.
type CheckWithLinesResponse struct {
	Check CheckResponse       `json:"check"`
	Lines []CheckLineResponse `json:"lines"`
}

// FromCheckWithLines arma la respuesta compuesta.
func FromCheckWithLines(c *entity.InventoryCheck, lines []entity.InventoryCheckLine) CheckWithLinesResponse {
	out := CheckWithLinesResponse{Check: FromCheck(c)}
	for i := range lines {
		out.Lines = append(out.Lines, FromCheckLine(&lines[i]))
	}
	return out
}

// ResolveAnomalyRequest cierre de investigación de una anomalía.
type ResolveAnomalyRequest struct {
	Notes string `json:"notes"`
}

// AnomalyResponse anomalía registrada.
type AnomalyResponse struct {
	ID              string          `json:"id"`
	ContractorID    string          `json:"contractor_id"`
	MaterialID      string          `json:"material_id"`
	CheckID         string          `json:"check_id,omitempty"`
	ExpectedQty     decimal.Decimal `json:"expected_qty"`
	ActualQty       decimal.Decimal `json:"actual_qty"`
	Variance        decimal.Decimal `json:"variance"`
	VariancePct     decimal.Decimal `json:"variance_pct"`
	AnomalyType     string          `json:"anomaly_type"`
	Notes           string          `json:"notes,omitempty"`
	Resolved        bool            `json:"resolved"`
	ResolvedBy      string          `json:"resolved_by,omitempty"`
	ResolutionNotes string          `json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// FromAnomaly convierte la entidad a respuesta.
func FromAnomaly(a *entity.Anomaly) AnomalyResponse {
	return AnomalyResponse{
		ID:              a.ID,
		ContractorID:    a.ContractorID,
		MaterialID:      a.MaterialID,
		CheckID:         a.CheckID,
		ExpectedQty:     a.ExpectedQty,
		ActualQty:       a.ActualQty,
		Variance:        a.Variance,
		VariancePct:     a.VariancePct,
		AnomalyType:     a.AnomalyType,
		Notes:           a.Notes,
		Resolved:        a.Resolved,
		ResolvedBy:      a.ResolvedBy,
		ResolutionNotes: a.ResolutionNotes,
		ResolvedAt:      a.ResolvedAt,
		CreatedAt:       a.CreatedAt,
	}
}
