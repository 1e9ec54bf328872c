package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación de anomalías por origen y dirección de la varianza.
const (
	AnomalyTypeAuditShortage   = "audit_shortage"
	AnomalyTypeReconShortage   = "reconciliation_shortage"
	AnomalyTypeReconExcess     = "reconciliation_excess"
	AnomalyTypeNegativeBalance = "negative_balance"
)

// Anomaly discrepancia registrada entre esperado y contado que superó su umbral.
// Se crea una vez por evento de varianza detectado; solo se muta para marcar
// resolución (nunca se borra).
type Anomaly struct {
	ID              string
	ContractorID    string
	MaterialID      string
	CheckID         string // conteo que la originó, si aplica
	CheckLineID     string
	ExpectedQty     decimal.Decimal
	ActualQty       decimal.Decimal
	Variance        decimal.Decimal
	VariancePct     decimal.Decimal
	AnomalyType     string
	Notes           string
	Resolved        bool
	ResolvedBy      string
	ResolutionNotes string
	ResolvedAt      *time.Time
	CreatedAt       time.Time
}

// InventoryAdjustment rastro de auditoría de una corrección manual a un saldo
// de contratista. Siempre acompaña a la mutación del saldo, nunca es el único
// registro del cambio.
type InventoryAdjustment struct {
	ID               string
	AdjustmentNumber string // ADJ-YYYY-NNNN
	ContractorID     string
	MaterialID       string
	CheckLineID      string // línea de conteo que originó la corrección, si aplica
	AdjustmentType   string
	QuantityBefore   decimal.Decimal
	QuantityAfter    decimal.Decimal
	AdjustmentQty    decimal.Decimal
	UnitOfMeasure    string
	AdjustmentDate   time.Time
	Reason           string
	RequestedBy      string
	ApprovedBy       string
	ApprovedAt       *time.Time
	CreatedAt        time.Time
}

// Tipos de ajuste.
const (
	AdjustmentTypeAuditCorrection = "AUDIT_CORRECTION"
	AdjustmentTypeReconCorrection = "RECONCILIATION_CORRECTION"
)
