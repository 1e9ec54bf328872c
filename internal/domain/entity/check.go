package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clases de conteo. Una sola forma de máquina de estados sirve a ambas,
// parametrizada por la política (ciego hasta enviar / direcciones anómalas).
const (
	CheckKindAudit      = "AUDIT"       // auditoría ciega
	CheckKindSelfReport = "SELF_REPORT" // reconciliación auto-reportada
)

// Estados de un conteo. Auditoría: IN_PROGRESS -> SUBMITTED -> ANALYZED -> CLOSED
// (lineal, sin retrocesos). Reconciliación: SUBMITTED -> ACCEPTED | DISPUTED.
const (
	CheckStatusInProgress = "IN_PROGRESS"
	CheckStatusSubmitted  = "SUBMITTED"
	CheckStatusAnalyzed   = "ANALYZED"
	CheckStatusClosed     = "CLOSED"
	CheckStatusAccepted   = "ACCEPTED"
	CheckStatusDisputed   = "DISPUTED"
)

// Tipos de auditoría.
const (
	AuditTypeScheduled = "SCHEDULED"
	AuditTypeSurprise  = "SURPRISE"
	AuditTypeFollowUp  = "FOLLOW_UP"
)

// InventoryCheck evento de conteo (auditoría o reconciliación) de un contratista.
// ResolvedAt se estampa cuando los conteos fueron aceptados en el ledger; solo
// los conteos resueltos aportan saldo de apertura al cálculo de esperado.
type InventoryCheck struct {
	ID           string
	CheckNumber  string // AUD-YYYY-NNNN | REC-YYYY-NNNN
	Kind         string // AUDIT | SELF_REPORT
	ContractorID string
	CheckDate    time.Time // fecha calendario
	CountedBy    string    // auditor o quien reporta
	AuditType    string    // solo AUDIT: SCHEDULED | SURPRISE | FOLLOW_UP
	PeriodType   string    // solo SELF_REPORT: weekly | monthly | ad_hoc
	PeriodStart  *time.Time
	PeriodEnd    *time.Time
	Status       string
	SubmittedAt  *time.Time
	AnalyzedAt   *time.Time
	ReviewedBy   string
	ReviewedAt   *time.Time
	ResolvedAt   *time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InventoryCheckLine línea de conteo por material.
//
// Diseño de auditoría ciega: antes de SUBMITTED la parte que cuenta solo ve
// identidad del material, unidad y su propio conteo; los campos calculados
// (ExpectedQuantity, Variance, ...) permanecen nil hasta el análisis y jamás
// se exponen en las vistas del auditor.
type InventoryCheckLine struct {
	ID            string
	CheckID       string
	MaterialID    string
	UnitOfMeasure string

	// Entrada de quien cuenta
	PhysicalCount *decimal.Decimal
	CounterNotes  string

	// Calculados por el sistema tras el envío
	ExpectedQuantity *decimal.Decimal
	Variance         *decimal.Decimal // physical - expected
	VariancePct      *decimal.Decimal
	ThresholdUsed    *decimal.Decimal
	IsAnomaly        *bool
	AnomalyID        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
