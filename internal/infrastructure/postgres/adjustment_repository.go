package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo ajustes de inventario sobre PostgreSQL. Append-only: cada
// corrección de saldo deja exactamente una fila.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, adjustment_number, contractor_id, material_id, check_line_id, adjustment_type, quantity_before, quantity_after, adjustment_qty, unit_of_measure, adjustment_date, reason, requested_by, approved_by, approved_at, created_at`

// Create persiste un ajuste.
func (r *AdjustmentRepo) Create(a *entity.InventoryAdjustment) error {
	query := `
		INSERT INTO inventory_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.AdjustmentNumber, a.ContractorID, a.MaterialID, nullIfEmpty(a.CheckLineID),
		a.AdjustmentType, a.QuantityBefore, a.QuantityAfter, a.AdjustmentQty,
		a.UnitOfMeasure, a.AdjustmentDate, a.Reason, a.RequestedBy,
		a.ApprovedBy, a.ApprovedAt, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// ListByCheck ajustes originados por las líneas de un conteo.
func (r *AdjustmentRepo) ListByCheck(checkID string) ([]entity.InventoryAdjustment, error) {
	query := `
		SELECT a.id, a.adjustment_number, a.contractor_id, a.material_id, a.check_line_id,
			a.adjustment_type, a.quantity_before, a.quantity_after, a.adjustment_qty,
			a.unit_of_measure, a.adjustment_date, a.reason, a.requested_by,
			a.approved_by, a.approved_at, a.created_at
		FROM inventory_adjustments a
		JOIN inventory_check_lines l ON l.id = a.check_line_id
		WHERE l.check_id = $1
		ORDER BY a.material_id`
	rows, err := r.q.Query(context.Background(), query, checkID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var out []entity.InventoryAdjustment
	for rows.Next() {
		var a entity.InventoryAdjustment
		var checkLineID *string
		if err := rows.Scan(
			&a.ID, &a.AdjustmentNumber, &a.ContractorID, &a.MaterialID, &checkLineID,
			&a.AdjustmentType, &a.QuantityBefore, &a.QuantityAfter, &a.AdjustmentQty,
			&a.UnitOfMeasure, &a.AdjustmentDate, &a.Reason, &a.RequestedBy,
			&a.ApprovedBy, &a.ApprovedAt, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		a.CheckLineID = orEmpty(checkLineID)
		out = append(out, a)
	}
	return out, rows.Err()
}
