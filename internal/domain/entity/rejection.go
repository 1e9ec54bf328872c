package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una devolución de material rechazado. El inventario solo cambia
// al recibir el material de vuelta en bodega (REPORTED y APPROVED no tocan saldos).
const (
	RejectionStatusReported    = "REPORTED"
	RejectionStatusApproved    = "APPROVED"
	RejectionStatusReceived    = "RECEIVED_AT_WAREHOUSE"
	RejectionStatusDisputed    = "DISPUTED"
)

// MaterialRejection material rechazado por un contratista, devuelto a bodega
// en dos fases: reporte -> aprobación (asigna bodega de retorno) -> recepción.
// Solo las devoluciones RECEIVED_AT_WAREHOUSE cuentan en el inventario esperado.
type MaterialRejection struct {
	ID                  string
	RejectionNumber     string // REJ-YYYY-NNNN
	ContractorID        string
	MaterialID          string
	OriginalIssuanceID  string // opcional
	QuantityRejected    decimal.Decimal
	UnitOfMeasure       string
	QuantityInBaseUnit  decimal.Decimal // fijada en la recepción, en unidad canónica
	BaseUnit            string
	RejectionDate       time.Time // fecha calendario
	RejectionReason     string
	ReportedBy          string
	Status              string
	ReturnWarehouseID   string
	ApprovedBy          string
	ApprovedAt          *time.Time
	ReceivedBy          string
	ReceivedAt          *time.Time
	WarehouseGRNNumber  string
	Notes               string
	CreatedAt           time.Time
}
