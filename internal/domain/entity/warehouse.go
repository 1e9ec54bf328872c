package entity

import "time"

// Tipos de propietario de bodega.
const (
	WarehouseOwnerCompany    = "company"
	WarehouseOwnerContractor = "contractor"
)

// Warehouse bodega física. Las capacidades determinan qué clase de ítem puede
// almacenar (materiales, producto terminado o ambos).
type Warehouse struct {
	ID                   string
	Code                 string
	Name                 string
	Location             string
	OwnerType            string // company | contractor
	CanHoldMaterials     bool
	CanHoldFinishedGoods bool
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Contractor contratista que recibe material y reporta producción y conteos.
type Contractor struct {
	ID          string
	Code        string
	Name        string
	ContactName string
	Phone       string
	Email       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Supplier proveedor de materiales (órdenes de compra).
type Supplier struct {
	ID        string
	Code      string
	Name      string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
}
