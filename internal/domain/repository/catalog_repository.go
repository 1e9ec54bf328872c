package repository

import "github.com/jhoicas/ObraStock-api/internal/domain/entity"

// MaterialRepository puerto de catálogo de materiales.
type MaterialRepository interface {
	Create(m *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByCode(code string) (*entity.Material, error)
	List() ([]entity.Material, error)
}

// UnitConversionRepository puerto de factores de conversión.
// Find busca solo filas activas, con unidades normalizadas (case-insensitive).
type UnitConversionRepository interface {
	Create(c *entity.UnitConversion) error
	Find(materialID, fromUnit, toUnit string) (*entity.UnitConversion, error)
	ListByMaterial(materialID string) ([]entity.UnitConversion, error)
}

// WarehouseRepository puerto de bodegas.
type WarehouseRepository interface {
	Create(w *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	List() ([]entity.Warehouse, error)
}

// ContractorRepository puerto de contratistas.
type ContractorRepository interface {
	Create(c *entity.Contractor) error
	GetByID(id string) (*entity.Contractor, error)
	List() ([]entity.Contractor, error)
}

// SupplierRepository puerto de proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List() ([]entity.Supplier, error)
}

// FinishedGoodRepository puerto de producto terminado y su BOM.
type FinishedGoodRepository interface {
	Create(fg *entity.FinishedGood) error
	GetByID(id string) (*entity.FinishedGood, error)
	List() ([]entity.FinishedGood, error)
	ListBOM(finishedGoodID string) ([]entity.BOMItem, error)
}

// UserRepository puerto de usuarios.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
