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

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo recepciones de compra sobre PostgreSQL. Append-only.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

// Create persiste la recepción con sus líneas.
func (r *GoodsReceiptRepo) Create(g *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (id, grn_number, purchase_order_id, warehouse_id, receipt_date, received_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.GRNNumber, g.PurchaseOrderID, g.WarehouseID, g.ReceiptDate, g.ReceivedBy, g.Notes, g.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert goods receipt: %w", err)
	}
	for _, line := range g.Lines {
		lineQuery := `
			INSERT INTO goods_receipt_lines (id, goods_receipt_id, po_line_id, material_id, quantity_received, unit_of_measure, batch_number, remarks)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, g.ID, line.POLineID, line.MaterialID, line.QuantityReceived,
			line.UnitOfMeasure, line.BatchNumber, line.Remarks,
		)
		if err != nil {
			return fmt.Errorf("insert goods receipt line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la recepción con sus líneas.
func (r *GoodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	query := `
		SELECT id, grn_number, purchase_order_id, warehouse_id, receipt_date, received_by, notes, created_at
		FROM goods_receipts WHERE id = $1`
	var g entity.GoodsReceipt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.GRNNumber, &g.PurchaseOrderID, &g.WarehouseID, &g.ReceiptDate, &g.ReceivedBy, &g.Notes, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}
	lines, err := r.listLines(g.ID)
	if err != nil {
		return nil, err
	}
	g.Lines = lines
	return &g, nil
}

func (r *GoodsReceiptRepo) listLines(receiptID string) ([]entity.GoodsReceiptLine, error) {
	query := `
		SELECT id, goods_receipt_id, po_line_id, material_id, quantity_received, unit_of_measure, batch_number, remarks
		FROM goods_receipt_lines WHERE goods_receipt_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list goods receipt lines: %w", err)
	}
	defer rows.Close()

	var out []entity.GoodsReceiptLine
	for rows.Next() {
		var l entity.GoodsReceiptLine
		if err := rows.Scan(&l.ID, &l.GoodsReceiptID, &l.POLineID, &l.MaterialID, &l.QuantityReceived, &l.UnitOfMeasure, &l.BatchNumber, &l.Remarks); err != nil {
			return nil, fmt.Errorf("scan goods receipt line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListByPurchaseOrder recepciones contra una orden, más recientes primero.
func (r *GoodsReceiptRepo) ListByPurchaseOrder(poID string) ([]entity.GoodsReceipt, error) {
	query := `
		SELECT id, grn_number, purchase_order_id, warehouse_id, receipt_date, received_by, notes, created_at
		FROM goods_receipts WHERE purchase_order_id = $1
		ORDER BY receipt_date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, poID)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()

	var out []entity.GoodsReceipt
	for rows.Next() {
		var g entity.GoodsReceipt
		if err := rows.Scan(&g.ID, &g.GRNNumber, &g.PurchaseOrderID, &g.WarehouseID, &g.ReceiptDate, &g.ReceivedBy, &g.Notes, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
