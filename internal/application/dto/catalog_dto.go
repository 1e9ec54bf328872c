package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
)

// CreateMaterialRequest alta de material.
type CreateMaterialRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description,omitempty"`
}

// MaterialResponse material del catálogo.
type MaterialResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromMaterial convierte la entidad a respuesta.
func FromMaterial(m *entity.Material) MaterialResponse {
	return MaterialResponse{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		Unit:        m.Unit,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

// CreateConversionRequest alta de factor de conversión.
type CreateConversionRequest struct {
	FromUnit string          `json:"from_unit"`
	ToUnit   string          `json:"to_unit"`
	Factor   decimal.Decimal `json:"factor"`
}

// ConversionResponse factor de conversión de un material.
type ConversionResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	FromUnit   string          `json:"from_unit"`
	ToUnit     string          `json:"to_unit"`
	Factor     decimal.Decimal `json:"factor"`
}

// FromConversion convierte la entidad a respuesta.
func FromConversion(c *entity.UnitConversion) ConversionResponse {
	return ConversionResponse{
		ID:         c.ID,
		MaterialID: c.MaterialID,
		FromUnit:   c.FromUnit,
		ToUnit:     c.ToUnit,
		Factor:     c.Factor,
	}
}

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	Location             string `json:"location,omitempty"`
	OwnerType            string `json:"owner_type,omitempty"`
	CanHoldMaterials     bool   `json:"can_hold_materials"`
	CanHoldFinishedGoods bool   `json:"can_hold_finished_goods"`
}

// WarehouseResponse bodega del catálogo.
type WarehouseResponse struct {
	ID                   string `json:"id"`
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	Location             string `json:"location,omitempty"`
	OwnerType            string `json:"owner_type"`
	CanHoldMaterials     bool   `json:"can_hold_materials"`
	CanHoldFinishedGoods bool   `json:"can_hold_finished_goods"`
	IsActive             bool   `json:"is_active"`
}

// FromWarehouse convierte la entidad a respuesta.
func FromWarehouse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:                   w.ID,
		Code:                 w.Code,
		Name:                 w.Name,
		Location:             w.Location,
		OwnerType:            w.OwnerType,
		CanHoldMaterials:     w.CanHoldMaterials,
		CanHoldFinishedGoods: w.CanHoldFinishedGoods,
		IsActive:             w.IsActive,
	}
}

// CreateContractorRequest alta de contratista.
type CreateContractorRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// ContractorResponse contratista del catálogo.
type ContractorResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// FromContractor convierte la entidad a respuesta.
func FromContractor(c *entity.Contractor) ContractorResponse {
	return ContractorResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Email:       c.Email,
		IsActive:    c.IsActive,
	}
}

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// SupplierResponse proveedor del catálogo.
type SupplierResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"is_active"`
}

// FromSupplier convierte la entidad a respuesta.
func FromSupplier(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:       s.ID,
		Code:     s.Code,
		Name:     s.Name,
		Email:    s.Email,
		Phone:    s.Phone,
		IsActive: s.IsActive,
	}
}

// FinishedGoodResponse producto terminado del catálogo.
type FinishedGoodResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	IsActive bool   `json:"is_active"`
}

// FromFinishedGood convierte la entidad a respuesta.
func FromFinishedGood(fg *entity.FinishedGood) FinishedGoodResponse {
	return FinishedGoodResponse{
		ID:       fg.ID,
		Code:     fg.Code,
		Name:     fg.Name,
		Unit:     fg.Unit,
		IsActive: fg.IsActive,
	}
}

// BOMItemResponse línea de lista de materiales.
type BOMItemResponse struct {
	MaterialID      string          `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// FromBOMItem convierte la entidad a respuesta.
func FromBOMItem(b *entity.BOMItem) BOMItemResponse {
	return BOMItemResponse{MaterialID: b.MaterialID, QuantityPerUnit: b.QuantityPerUnit}
}

// SetThresholdRequest alta o reemplazo de umbral de varianza.
type SetThresholdRequest struct {
	ContractorID string          `json:"contractor_id,omitempty"` // vacío = default del material
	MaterialID   string          `json:"material_id"`
	ThresholdPct decimal.Decimal `json:"threshold_pct"`
	Notes        string          `json:"notes,omitempty"`
}

// ThresholdResponse umbral configurado.
type ThresholdResponse struct {
	ID           string          `json:"id"`
	ContractorID string          `json:"contractor_id,omitempty"`
	MaterialID   string          `json:"material_id"`
	ThresholdPct decimal.Decimal `json:"threshold_pct"`
	IsActive     bool            `json:"is_active"`
	Notes        string          `json:"notes,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
}

// FromThreshold convierte la entidad a respuesta.
func FromThreshold(t *entity.VarianceThreshold) ThresholdResponse {
	return ThresholdResponse{
		ID:           t.ID,
		ContractorID: t.ContractorID,
		MaterialID:   t.MaterialID,
		ThresholdPct: t.ThresholdPct,
		IsActive:     t.IsActive,
		Notes:        t.Notes,
		CreatedBy:    t.CreatedBy,
	}
}
