// Package catalog altas y consultas de los maestros: materiales, bodegas,
// contratistas, proveedores, producto terminado y factores de conversión.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/application/conversion"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// UseCase administración de catálogos.
type UseCase struct {
	materialRepo     repository.MaterialRepository
	conversionRepo   repository.UnitConversionRepository
	warehouseRepo    repository.WarehouseRepository
	contractorRepo   repository.ContractorRepository
	supplierRepo     repository.SupplierRepository
	finishedGoodRepo repository.FinishedGoodRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	materialRepo repository.MaterialRepository,
	conversionRepo repository.UnitConversionRepository,
	warehouseRepo repository.WarehouseRepository,
	contractorRepo repository.ContractorRepository,
	supplierRepo repository.SupplierRepository,
	finishedGoodRepo repository.FinishedGoodRepository,
) *UseCase {
	return &UseCase{
		materialRepo:     materialRepo,
		conversionRepo:   conversionRepo,
		warehouseRepo:    warehouseRepo,
		contractorRepo:   contractorRepo,
		supplierRepo:     supplierRepo,
		finishedGoodRepo: finishedGoodRepo,
	}
}

// CreateMaterialInput alta de material.
type CreateMaterialInput struct {
	Code        string
	Name        string
	Unit        string
	Description string
}

// CreateMaterial crea el material con su unidad canónica normalizada.
func (uc *UseCase) CreateMaterial(input CreateMaterialInput) (*entity.Material, error) {
	unit := conversion.Normalize(input.Unit)
	if input.Code == "" || input.Name == "" || unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.materialRepo.GetByCode(input.Code); err == nil {
		return nil, domain.ErrDuplicate
	} else if err != domain.ErrNotFound {
		return nil, err
	}
	now := time.Now()
	material := &entity.Material{
		ID:          uuid.New().String(),
		Code:        input.Code,
		Name:        input.Name,
		Unit:        unit,
		Description: input.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

// ListMaterials todos los materiales.
func (uc *UseCase) ListMaterials() ([]entity.Material, error) {
	return uc.materialRepo.List()
}

// CreateConversionInput alta de factor de conversión para un material.
type CreateConversionInput struct {
	MaterialID string
	FromUnit   string
	ToUnit     string
	Factor     decimal.Decimal
}

// CreateConversion registra un factor direccional. Factor > 0 es invariante de
// escritura: aquí es el único lugar donde entra a la tabla.
func (uc *UseCase) CreateConversion(input CreateConversionInput) (*entity.UnitConversion, error) {
	from := conversion.Normalize(input.FromUnit)
	to := conversion.Normalize(input.ToUnit)
	if input.MaterialID == "" || from == "" || to == "" || from == to {
		return nil, domain.ErrInvalidInput
	}
	if !input.Factor.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.materialRepo.GetByID(input.MaterialID); err != nil {
		return nil, err
	}
	// Una fila por par direccional; la inversa se deriva, no se almacena dos veces.
	if _, err := uc.conversionRepo.Find(input.MaterialID, from, to); err == nil {
		return nil, domain.ErrDuplicate
	} else if err != domain.ErrNotFound {
		return nil, err
	}
	if _, err := uc.conversionRepo.Find(input.MaterialID, to, from); err == nil {
		return nil, domain.ErrDuplicate
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	row := &entity.UnitConversion{
		ID:         uuid.New().String(),
		MaterialID: input.MaterialID,
		FromUnit:   from,
		ToUnit:     to,
		Factor:     input.Factor,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
	if err := uc.conversionRepo.Create(row); err != nil {
		return nil, err
	}
	return row, nil
}

// ListConversions factores de un material.
func (uc *UseCase) ListConversions(materialID string) ([]entity.UnitConversion, error) {
	return uc.conversionRepo.ListByMaterial(materialID)
}

// CreateWarehouseInput alta de bodega.
type CreateWarehouseInput struct {
	Code                 string
	Name                 string
	Location             string
	OwnerType            string
	CanHoldMaterials     bool
	CanHoldFinishedGoods bool
}

// CreateWarehouse crea la bodega. Debe poder almacenar al menos una clase de ítem.
func (uc *UseCase) CreateWarehouse(input CreateWarehouseInput) (*entity.Warehouse, error) {
	if input.Code == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.CanHoldMaterials && !input.CanHoldFinishedGoods {
		return nil, domain.ErrInvalidInput
	}
	ownerType := input.OwnerType
	if ownerType == "" {
		ownerType = entity.WarehouseOwnerCompany
	}
	if ownerType != entity.WarehouseOwnerCompany && ownerType != entity.WarehouseOwnerContractor {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:                   uuid.New().String(),
		Code:                 input.Code,
		Name:                 input.Name,
		Location:             input.Location,
		OwnerType:            ownerType,
		CanHoldMaterials:     input.CanHoldMaterials,
		CanHoldFinishedGoods: input.CanHoldFinishedGoods,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// ListWarehouses todas las bodegas.
func (uc *UseCase) ListWarehouses() ([]entity.Warehouse, error) {
	return uc.warehouseRepo.List()
}

// CreateContractor alta de contratista.
func (uc *UseCase) CreateContractor(code, name, contactName, phone, email string) (*entity.Contractor, error) {
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	contractor := &entity.Contractor{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        name,
		ContactName: contactName,
		Phone:       phone,
		Email:       email,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.contractorRepo.Create(contractor); err != nil {
		return nil, err
	}
	return contractor, nil
}

// ListContractors todos los contratistas.
func (uc *UseCase) ListContractors() ([]entity.Contractor, error) {
	return uc.contractorRepo.List()
}

// CreateSupplier alta de proveedor.
func (uc *UseCase) CreateSupplier(code, name, email, phone string) (*entity.Supplier, error) {
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Email:     email,
		Phone:     phone,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// ListFinishedGoods todo el producto terminado con su BOM disponible aparte.
func (uc *UseCase) ListFinishedGoods() ([]entity.FinishedGood, error) {
	return uc.finishedGoodRepo.List()
}

// GetBOM lista de materiales de un producto terminado.
func (uc *UseCase) GetBOM(finishedGoodID string) ([]entity.BOMItem, error) {
	if _, err := uc.finishedGoodRepo.GetByID(finishedGoodID); err != nil {
		return nil, err
	}
	return uc.finishedGoodRepo.ListBOM(finishedGoodID)
}
