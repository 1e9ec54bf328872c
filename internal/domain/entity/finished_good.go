package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinishedGood producto terminado que un contratista fabrica a partir de materiales.
type FinishedGood struct {
	ID        string
	Code      string
	Name      string
	Unit      string
	IsActive  bool
	CreatedAt time.Time
}

// BOMItem línea de lista de materiales: cuánto material consume una unidad
// de producto terminado. La explosión del BOM genera los eventos de consumo.
type BOMItem struct {
	ID              string
	FinishedGoodID  string
	MaterialID      string
	QuantityPerUnit decimal.Decimal // en la unidad canónica del material
	CreatedAt       time.Time
}
