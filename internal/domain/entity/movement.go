package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialIssuance entrega de material de bodega a contratista.
// Registro append-only: se crea una vez y nunca se edita ni borra; su fecha es
// el límite de integración del cálculo de inventario esperado.
type MaterialIssuance struct {
	ID                 string
	IssuanceNumber     string // ISS-YYYY-NNNN
	WarehouseID        string
	ContractorID       string
	MaterialID         string
	Quantity           decimal.Decimal // en la unidad solicitada
	UnitOfMeasure      string
	QuantityInBaseUnit decimal.Decimal // convertida a la unidad canónica del material
	BaseUnit           string
	IssuedDate         time.Time // fecha calendario
	IssuedBy           string
	Notes              string
	CreatedAt          time.Time
}

// ProductionRecord reporte de producción de un contratista. La explosión del
// BOM genera los Consumption asociados.
type ProductionRecord struct {
	ID             string
	ContractorID   string
	FinishedGoodID string
	Quantity       decimal.Decimal
	ReportedBy     string
	Notes          string
	ProducedAt     time.Time
	CreatedAt      time.Time
}

// Consumption consumo de material derivado de producción. Append-only, en la
// unidad canónica del material.
type Consumption struct {
	ID                 string
	ContractorID       string
	MaterialID         string
	ProductionRecordID string
	Quantity           decimal.Decimal
	ConsumedAt         time.Time
	CreatedAt          time.Time
}
