package repository

import (
	"time"

	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
)

// CheckRepository conteos de inventario (auditorías y auto-reportes) con sus
// líneas.
type CheckRepository interface {
	Create(c *entity.InventoryCheck) error
	CreateLines(lines []entity.InventoryCheckLine) error
	GetByID(id string) (*entity.InventoryCheck, error)
	GetByIDForUpdate(id string) (*entity.InventoryCheck, error)
	UpdateHeader(c *entity.InventoryCheck) error
	UpdateLine(l *entity.InventoryCheckLine) error
	ListLines(checkID string) ([]entity.InventoryCheckLine, error)
	FindOpenByContractor(contractorID, kind string) (*entity.InventoryCheck, error)
	ListByContractor(contractorID string) ([]entity.InventoryCheck, error)
	List(kind, status string) ([]entity.InventoryCheck, error)
	// LastResolvedCount devuelve la línea del conteo resuelto más reciente que
	// incluyó al par contratista+material con check_date estrictamente anterior
	// a before, junto con su cabecera. Un conteo del mismo día de before no es
	// apertura: sus movimientos todavía cuentan en la ventana. ErrNotFound si
	// nunca se ha resuelto uno: el cálculo de esperado arranca entonces desde
	// la época con apertura cero.
	LastResolvedCount(contractorID, materialID string, before time.Time) (*entity.InventoryCheckLine, *entity.InventoryCheck, error)
}

// AnomalyRepository anomalías de varianza y su ciclo de investigación.
type AnomalyRepository interface {
	Create(a *entity.Anomaly) error
	GetByID(id string) (*entity.Anomaly, error)
	Update(a *entity.Anomaly) error
	List(status string) ([]entity.Anomaly, error)
	ListByCheck(checkID string) ([]entity.Anomaly, error)
}

// AdjustmentRepository ajustes de inventario derivados de conteos aceptados.
type AdjustmentRepository interface {
	Create(a *entity.InventoryAdjustment) error
	ListByCheck(checkID string) ([]entity.InventoryAdjustment, error)
}
