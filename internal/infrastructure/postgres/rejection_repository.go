package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

var _ repository.RejectionRepository = (*RejectionRepo)(nil)

// RejectionRepo devoluciones de material rechazado sobre PostgreSQL.
type RejectionRepo struct {
	q Querier
}

// NewRejectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRejectionRepository(q Querier) *RejectionRepo {
	return &RejectionRepo{q: q}
}

const rejectionColumns = `id, rejection_number, contractor_id, material_id, original_issuance_id, quantity_rejected, unit_of_measure, quantity_in_base_unit, base_unit, rejection_date, rejection_reason, reported_by, status, return_warehouse_id, approved_by, approved_at, received_by, received_at, warehouse_grn_number, notes, created_at`

// Create persiste una devolución reportada.
func (r *RejectionRepo) Create(m *entity.MaterialRejection) error {
	query := `
		INSERT INTO material_rejections (` + rejectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.RejectionNumber, m.ContractorID, m.MaterialID, nullIfEmpty(m.OriginalIssuanceID),
		m.QuantityRejected, m.UnitOfMeasure, m.QuantityInBaseUnit, m.BaseUnit,
		m.RejectionDate, m.RejectionReason, m.ReportedBy,
		m.Status, nullIfEmpty(m.ReturnWarehouseID), m.ApprovedBy, m.ApprovedAt,
		m.ReceivedBy, m.ReceivedAt, m.WarehouseGRNNumber, m.Notes, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rejection: %w", err)
	}
	return nil
}

// GetByID obtiene una devolución por ID.
func (r *RejectionRepo) GetByID(id string) (*entity.MaterialRejection, error) {
	query := `SELECT ` + rejectionColumns + ` FROM material_rejections WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene una devolución bloqueando la fila. Evita la doble
// recepción concurrente del mismo rechazo.
func (r *RejectionRepo) GetByIDForUpdate(id string) (*entity.MaterialRejection, error) {
	query := `SELECT ` + rejectionColumns + ` FROM material_rejections WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *RejectionRepo) scanOne(row pgx.Row) (*entity.MaterialRejection, error) {
	var m entity.MaterialRejection
	var originalIssuanceID, returnWarehouseID *string
	err := row.Scan(
		&m.ID, &m.RejectionNumber, &m.ContractorID, &m.MaterialID, &originalIssuanceID,
		&m.QuantityRejected, &m.UnitOfMeasure, &m.QuantityInBaseUnit, &m.BaseUnit,
		&m.RejectionDate, &m.RejectionReason, &m.ReportedBy,
		&m.Status, &returnWarehouseID, &m.ApprovedBy, &m.ApprovedAt,
		&m.ReceivedBy, &m.ReceivedAt, &m.WarehouseGRNNumber, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rejection: %w", err)
	}
	m.OriginalIssuanceID = orEmpty(originalIssuanceID)
	m.ReturnWarehouseID = orEmpty(returnWarehouseID)
	return &m, nil
}

// Update persiste la transición de estado de una devolución.
func (r *RejectionRepo) Update(m *entity.MaterialRejection) error {
	query := `
		UPDATE material_rejections
		SET status = $2, return_warehouse_id = $3, approved_by = $4, approved_at = $5,
			received_by = $6, received_at = $7, warehouse_grn_number = $8,
			quantity_in_base_unit = $9, base_unit = $10, notes = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		m.ID, m.Status, nullIfEmpty(m.ReturnWarehouseID), m.ApprovedBy, m.ApprovedAt,
		m.ReceivedBy, m.ReceivedAt, m.WarehouseGRNNumber,
		m.QuantityInBaseUnit, m.BaseUnit, m.Notes,
	)
	if err != nil {
		return fmt.Errorf("update rejection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStatus devoluciones por estado; vacío = todas.
func (r *RejectionRepo) ListByStatus(status string) ([]entity.MaterialRejection, error) {
	query := `SELECT ` + rejectionColumns + ` FROM material_rejections`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY rejection_date DESC, created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rejections: %w", err)
	}
	defer rows.Close()

	var out []entity.MaterialRejection
	for rows.Next() {
		var m entity.MaterialRejection
		var originalIssuanceID, returnWarehouseID *string
		if err := rows.Scan(
			&m.ID, &m.RejectionNumber, &m.ContractorID, &m.MaterialID, &originalIssuanceID,
			&m.QuantityRejected, &m.UnitOfMeasure, &m.QuantityInBaseUnit, &m.BaseUnit,
			&m.RejectionDate, &m.RejectionReason, &m.ReportedBy,
			&m.Status, &returnWarehouseID, &m.ApprovedBy, &m.ApprovedAt,
			&m.ReceivedBy, &m.ReceivedAt, &m.WarehouseGRNNumber, &m.Notes, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rejection: %w", err)
		}
		m.OriginalIssuanceID = orEmpty(originalIssuanceID)
		m.ReturnWarehouseID = orEmpty(returnWarehouseID)
		out = append(out, m)
	}
	return out, rows.Err()
}

// SumReceivedInWindow suma en unidad canónica de lo devuelto con recepción
// efectiva (received_at) en [from, to). Rechazos reportados o aprobados sin
// recibir no cuentan.
func (r *RejectionRepo) SumReceivedInWindow(contractorID, materialID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity_in_base_unit), 0)
		FROM material_rejections
		WHERE contractor_id = $1 AND material_id = $2 AND status = $3
		  AND received_at >= $4 AND received_at < $5`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, contractorID, materialID, entity.RejectionStatusReceived, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum received rejections: %w", err)
	}
	return sum, nil
}
