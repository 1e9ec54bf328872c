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

var _ repository.IssuanceRepository = (*IssuanceRepo)(nil)

// IssuanceRepo entregas de material sobre PostgreSQL. Tabla append-only: no hay
// Update ni Delete a propósito.
type IssuanceRepo struct {
	q Querier
}

// NewIssuanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIssuanceRepository(q Querier) *IssuanceRepo {
	return &IssuanceRepo{q: q}
}

const issuanceColumns = `id, issuance_number, warehouse_id, contractor_id, material_id, quantity, unit_of_measure, quantity_in_base_unit, base_unit, issued_date, issued_by, notes, created_at`

// Create persiste una entrega.
func (r *IssuanceRepo) Create(i *entity.MaterialIssuance) error {
	query := `
		INSERT INTO material_issuances (` + issuanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.IssuanceNumber, i.WarehouseID, i.ContractorID, i.MaterialID,
		i.Quantity, i.UnitOfMeasure, i.QuantityInBaseUnit, i.BaseUnit,
		i.IssuedDate, i.IssuedBy, i.Notes, i.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert issuance: %w", err)
	}
	return nil
}

// GetByID obtiene una entrega por ID.
func (r *IssuanceRepo) GetByID(id string) (*entity.MaterialIssuance, error) {
	query := `SELECT ` + issuanceColumns + ` FROM material_issuances WHERE id = $1`
	var i entity.MaterialIssuance
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.IssuanceNumber, &i.WarehouseID, &i.ContractorID, &i.MaterialID,
		&i.Quantity, &i.UnitOfMeasure, &i.QuantityInBaseUnit, &i.BaseUnit,
		&i.IssuedDate, &i.IssuedBy, &i.Notes, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get issuance: %w", err)
	}
	return &i, nil
}

// ListByContractor entregas de un contratista, más recientes primero.
func (r *IssuanceRepo) ListByContractor(contractorID string) ([]entity.MaterialIssuance, error) {
	query := `
		SELECT ` + issuanceColumns + `
		FROM material_issuances WHERE contractor_id = $1
		ORDER BY issued_date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, contractorID)
	if err != nil {
		return nil, fmt.Errorf("list issuances: %w", err)
	}
	defer rows.Close()

	var out []entity.MaterialIssuance
	for rows.Next() {
		var i entity.MaterialIssuance
		if err := rows.Scan(&i.ID, &i.IssuanceNumber, &i.WarehouseID, &i.ContractorID, &i.MaterialID,
			&i.Quantity, &i.UnitOfMeasure, &i.QuantityInBaseUnit, &i.BaseUnit,
			&i.IssuedDate, &i.IssuedBy, &i.Notes, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan issuance: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// SumBaseQuantityInWindow suma de cantidades en unidad canónica con
// issued_date en [from, to).
func (r *IssuanceRepo) SumBaseQuantityInWindow(contractorID, materialID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity_in_base_unit), 0)
		FROM material_issuances
		WHERE contractor_id = $1 AND material_id = $2
		  AND issued_date >= $3 AND issued_date < $4`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, contractorID, materialID, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum issuances: %w", err)
	}
	return sum, nil
}
