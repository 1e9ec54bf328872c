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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, po_number, supplier_id, status, order_date, created_by, notes, created_at, updated_at`

// Create persiste la orden con sus líneas.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.PONumber, po.SupplierID, po.Status, po.OrderDate,
		po.CreatedBy, po.Notes, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, line := range po.Lines {
		lineQuery := `
			INSERT INTO purchase_order_lines (id, purchase_order_id, material_id, quantity_ordered, quantity_received, unit_of_measure, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, po.ID, line.MaterialID, line.QuantityOrdered, line.QuantityReceived,
			line.UnitOfMeasure, line.Status,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate obtiene la orden bloqueando la cabecera. Serializa
// recepciones concurrentes contra la misma orden.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *PurchaseOrderRepo) getOne(query, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&po.ID, &po.PONumber, &po.SupplierID, &po.Status, &po.OrderDate,
		&po.CreatedBy, &po.Notes, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	lines, err := r.listLines(po.ID)
	if err != nil {
		return nil, err
	}
	po.Lines = lines
	return &po, nil
}

func (r *PurchaseOrderRepo) listLines(poID string) ([]entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, purchase_order_id, material_id, quantity_ordered, quantity_received, unit_of_measure, status
		FROM purchase_order_lines WHERE purchase_order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, poID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()

	var out []entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.MaterialID, &l.QuantityOrdered, &l.QuantityReceived, &l.UnitOfMeasure, &l.Status); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// UpdateLine persiste el acumulado recibido y el estado de una línea.
func (r *PurchaseOrderRepo) UpdateLine(line *entity.PurchaseOrderLine) error {
	query := `
		UPDATE purchase_order_lines
		SET quantity_received = $2, status = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, line.ID, line.QuantityReceived, line.Status)
	if err != nil {
		return fmt.Errorf("update purchase order line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus transición de estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List todas las órdenes, más recientes primero (sin líneas).
func (r *PurchaseOrderRepo) List() ([]entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders ORDER BY order_date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.PONumber, &po.SupplierID, &po.Status, &po.OrderDate,
			&po.CreatedBy, &po.Notes, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, po)
	}
	return out, rows.Err()
}
