package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material materia prima de construcción. Inmutable una vez referenciado por movimientos.
// Unit es la unidad canónica en la que se llevan los saldos de contratista.
type Material struct {
	ID          string
	Code        string
	Name        string
	Unit        string // unidad canónica (ej. "kg")
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UnitConversion factor direccional (material, from, to) -> factor.
// Una búsqueda puede usar la fila almacenada o su inverso multiplicativo.
// Invariante: Factor > 0 (validado al escribir).
type UnitConversion struct {
	ID         string
	MaterialID string
	FromUnit   string
	ToUnit     string
	Factor     decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
}
