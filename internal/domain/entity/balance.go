package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseInventory saldo de un material en una bodega, en la unidad de
// almacenamiento de esa bodega. Nunca se deja negativo intencionalmente:
// toda mutación valida suficiencia bajo lock de fila.
type WarehouseInventory struct {
	WarehouseID     string
	MaterialID      string
	CurrentQuantity decimal.Decimal
	UnitOfMeasure   string
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
	LastUpdated     time.Time
}

// IsBelowReorderPoint indica si el saldo cayó bajo el punto de reorden (umbral estático).
func (w *WarehouseInventory) IsBelowReorderPoint() bool {
	return w.ReorderPoint.IsPositive() && w.CurrentQuantity.LessThan(w.ReorderPoint)
}

// ContractorInventory saldo de un material en poder de un contratista, siempre
// en la unidad canónica del material. Puede quedar negativo: un faltante sin
// explicar pendiente de investigación es en sí una señal de anomalía.
type ContractorInventory struct {
	ContractorID string
	MaterialID   string
	Quantity     decimal.Decimal
	LastUpdated  time.Time
}

// FinishedGoodsInventory saldo de producto terminado en una bodega.
type FinishedGoodsInventory struct {
	WarehouseID     string
	FinishedGoodID  string
	CurrentQuantity decimal.Decimal
	UnitOfMeasure   string
	LastUpdated     time.Time
}
