package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transferencia entre bodegas.
const (
	TransferStatusDraft     = "draft"
	TransferStatusSubmitted = "submitted"
	TransferStatusCompleted = "completed"
	TransferStatusCancelled = "cancelled"
)

// Clases de ítem transferible.
const (
	TransferTypeMaterial     = "material"
	TransferTypeFinishedGood = "finished_good"
)

// StockTransfer transferencia de inventario entre dos bodegas. Los saldos solo
// se mueven al completarla; draft y submitted no tocan inventario.
type StockTransfer struct {
	ID                     string
	TransferNumber         string // TRF-YYYY-NNNN
	SourceWarehouseID      string
	DestinationWarehouseID string
	TransferType           string // material | finished_good
	Status                 string
	TransferDate           time.Time
	RequestedBy            string
	CompletedBy            string
	CompletedAt            *time.Time
	Notes                  string
	Lines                  []StockTransferLine
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// StockTransferLine línea de transferencia: un material o un producto terminado.
type StockTransferLine struct {
	ID             string
	TransferID     string
	MaterialID     string // si TransferType = material
	FinishedGoodID string // si TransferType = finished_good
	Quantity       decimal.Decimal
	UnitOfMeasure  string
}
