package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VarianceThreshold umbral de varianza aceptable para (contratista, material).
// ContractorID vacío = fila por defecto del material. Las filas por contratista
// sombrean a las del material, que a su vez sombrean la constante del sistema.
// ThresholdPct validado en (0, 100] al escribir.
type VarianceThreshold struct {
	ID           string
	ContractorID string // vacío = default del material
	MaterialID   string
	ThresholdPct decimal.Decimal
	IsActive     bool
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
