package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

var _ repository.FinishedGoodsReceiptRepository = (*FinishedGoodsReceiptRepo)(nil)

// FinishedGoodsReceiptRepo ingresos de producto terminado sobre PostgreSQL. Append-only.
type FinishedGoodsReceiptRepo struct {
	q Querier
}

// NewFinishedGoodsReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinishedGoodsReceiptRepository(q Querier) *FinishedGoodsReceiptRepo {
	return &FinishedGoodsReceiptRepo{q: q}
}

const fgrColumns = `id, receipt_number, contractor_id, warehouse_id, finished_good_id, quantity, unit_of_measure, receipt_date, received_by, notes, created_at`

// Create persiste el ingreso.
func (r *FinishedGoodsReceiptRepo) Create(g *entity.FinishedGoodsReceipt) error {
	query := `
		INSERT INTO finished_goods_receipts (` + fgrColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.ReceiptNumber, g.ContractorID, g.WarehouseID, g.FinishedGoodID,
		g.Quantity, g.UnitOfMeasure, g.ReceiptDate, g.ReceivedBy, g.Notes, g.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert finished goods receipt: %w", err)
	}
	return nil
}

// GetByID obtiene un ingreso por ID.
func (r *FinishedGoodsReceiptRepo) GetByID(id string) (*entity.FinishedGoodsReceipt, error) {
	query := `SELECT ` + fgrColumns + ` FROM finished_goods_receipts WHERE id = $1`
	var g entity.FinishedGoodsReceipt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.ReceiptNumber, &g.ContractorID, &g.WarehouseID, &g.FinishedGoodID,
		&g.Quantity, &g.UnitOfMeasure, &g.ReceiptDate, &g.ReceivedBy, &g.Notes, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get finished goods receipt: %w", err)
	}
	return &g, nil
}

// List todos los ingresos, más recientes primero.
func (r *FinishedGoodsReceiptRepo) List() ([]entity.FinishedGoodsReceipt, error) {
	query := `SELECT ` + fgrColumns + ` FROM finished_goods_receipts ORDER BY receipt_date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list finished goods receipts: %w", err)
	}
	defer rows.Close()

	var out []entity.FinishedGoodsReceipt
	for rows.Next() {
		var g entity.FinishedGoodsReceipt
		if err := rows.Scan(&g.ID, &g.ReceiptNumber, &g.ContractorID, &g.WarehouseID, &g.FinishedGoodID,
			&g.Quantity, &g.UnitOfMeasure, &g.ReceiptDate, &g.ReceivedBy, &g.Notes, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan finished goods receipt: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
