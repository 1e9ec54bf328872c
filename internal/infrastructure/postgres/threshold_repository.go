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

var _ repository.ThresholdRepository = (*ThresholdRepo)(nil)

// ThresholdRepo umbrales de varianza sobre PostgreSQL. contractor_id NULL
// representa el default del material.
type ThresholdRepo struct {
	q Querier
}

// NewThresholdRepository construye el adaptador. Pasar pool o tx (Querier).
func NewThresholdRepository(q Querier) *ThresholdRepo {
	return &ThresholdRepo{q: q}
}

const thresholdColumns = `id, contractor_id, material_id, threshold_pct, is_active, notes, created_by, created_at, updated_at`

// Create persiste un umbral.
func (r *ThresholdRepo) Create(t *entity.VarianceThreshold) error {
	query := `
		INSERT INTO variance_thresholds (` + thresholdColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, nullIfEmpty(t.ContractorID), t.MaterialID, t.ThresholdPct,
		t.IsActive, t.Notes, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert threshold: %w", err)
	}
	return nil
}

// Update persiste la activación o desactivación de un umbral.
func (r *ThresholdRepo) Update(t *entity.VarianceThreshold) error {
	query := `
		UPDATE variance_thresholds
		SET threshold_pct = $2, is_active = $3, notes = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		t.ID, t.ThresholdPct, t.IsActive, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update threshold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindActive umbral activo del par exacto; contractorID vacío busca el default
// del material (contractor_id IS NULL).
func (r *ThresholdRepo) FindActive(contractorID, materialID string) (*entity.VarianceThreshold, error) {
	query := `SELECT ` + thresholdColumns + ` FROM variance_thresholds WHERE material_id = $1 AND is_active`
	args := []any{materialID}
	if contractorID == "" {
		query += ` AND contractor_id IS NULL`
	} else {
		query += ` AND contractor_id = $2`
		args = append(args, contractorID)
	}
	query += ` LIMIT 1`

	t, err := scanThreshold(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find threshold: %w", err)
	}
	return t, nil
}

func scanThreshold(row pgx.Row) (*entity.VarianceThreshold, error) {
	var t entity.VarianceThreshold
	var contractorID *string
	err := row.Scan(
		&t.ID, &contractorID, &t.MaterialID, &t.ThresholdPct,
		&t.IsActive, &t.Notes, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.ContractorID = orEmpty(contractorID)
	return &t, nil
}

// List todos los umbrales, activos primero.
func (r *ThresholdRepo) List() ([]entity.VarianceThreshold, error) {
	query := `
		SELECT ` + thresholdColumns + `
		FROM variance_thresholds
		ORDER BY is_active DESC, material_id, contractor_id NULLS FIRST`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list thresholds: %w", err)
	}
	defer rows.Close()

	var out []entity.VarianceThreshold
	for rows.Next() {
		t, err := scanThreshold(rows)
		if err != nil {
			return nil, fmt.Errorf("scan threshold: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
