package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
)

// IssuanceRepository entregas de material a contratista.
type IssuanceRepository interface {
	Create(i *entity.MaterialIssuance) error
	GetByID(id string) (*entity.MaterialIssuance, error)
	ListByContractor(contractorID string) ([]entity.MaterialIssuance, error)
	// SumBaseQuantityInWindow suma quantity_in_base_unit de las entregas al
	// contratista para el material, con issued_date en [from, to).
	SumBaseQuantityInWindow(contractorID, materialID string, from, to time.Time) (decimal.Decimal, error)
}

// ConsumptionRepository consumos de material reportados en producción.
type ConsumptionRepository interface {
	Create(c *entity.Consumption) error
	ListByContractor(contractorID string) ([]entity.Consumption, error)
	SumQuantityInWindow(contractorID, materialID string, from, to time.Time) (decimal.Decimal, error)
}

// ProductionRepository registros de producción de producto terminado.
type ProductionRepository interface {
	Create(r *entity.ProductionRecord) error
	GetByID(id string) (*entity.ProductionRecord, error)
	ListByContractor(contractorID string) ([]entity.ProductionRecord, error)
}

// RejectionRepository devoluciones de material rechazado.
// SumReceivedInWindow solo cuenta rechazos ya recibidos en bodega; un rechazo
// reportado pero no recibido aún pertenece al contratista.
type RejectionRepository interface {
	Create(r *entity.MaterialRejection) error
	GetByID(id string) (*entity.MaterialRejection, error)
	GetByIDForUpdate(id string) (*entity.MaterialRejection, error)
	Update(r *entity.MaterialRejection) error
	ListByStatus(status string) ([]entity.MaterialRejection, error)
	SumReceivedInWindow(contractorID, materialID string, from, to time.Time) (decimal.Decimal, error)
}

// SequenceRepository numeración de documentos de negocio (ISS-2026-0001, ...).
// Next incrementa y devuelve el consecutivo del prefijo dentro del año, de
// forma segura bajo concurrencia (fila de secuencia con upsert atómico).
type SequenceRepository interface {
	Next(prefix string, year int) (int, error)
}
