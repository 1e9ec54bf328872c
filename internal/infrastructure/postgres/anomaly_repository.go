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

var _ repository.AnomalyRepository = (*AnomalyRepo)(nil)

// AnomalyRepo anomalías de varianza sobre PostgreSQL. Sin Delete: las anomalías
// se resuelven, no se borran.
type AnomalyRepo struct {
	q Querier
}

// NewAnomalyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnomalyRepository(q Querier) *AnomalyRepo {
	return &AnomalyRepo{q: q}
}

const anomalyColumns = `id, contractor_id, material_id, check_id, check_line_id, expected_qty, actual_qty, variance, variance_pct, anomaly_type, notes, resolved, resolved_by, resolution_notes, resolved_at, created_at`

// Create persiste una anomalía.
func (r *AnomalyRepo) Create(a *entity.Anomaly) error {
	query := `
		INSERT INTO anomalies (` + anomalyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ContractorID, a.MaterialID, nullIfEmpty(a.CheckID), nullIfEmpty(a.CheckLineID),
		a.ExpectedQty, a.ActualQty, a.Variance, a.VariancePct, a.AnomalyType,
		a.Notes, a.Resolved, a.ResolvedBy, a.ResolutionNotes, a.ResolvedAt, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert anomaly: %w", err)
	}
	return nil
}

// GetByID obtiene una anomalía por ID.
func (r *AnomalyRepo) GetByID(id string) (*entity.Anomaly, error) {
	query := `SELECT ` + anomalyColumns + ` FROM anomalies WHERE id = $1`
	a, err := scanAnomaly(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get anomaly: %w", err)
	}
	return a, nil
}

func scanAnomaly(row pgx.Row) (*entity.Anomaly, error) {
	var a entity.Anomaly
	var checkID, checkLineID *string
	err := row.Scan(
		&a.ID, &a.ContractorID, &a.MaterialID, &checkID, &checkLineID,
		&a.ExpectedQty, &a.ActualQty, &a.Variance, &a.VariancePct, &a.AnomalyType,
		&a.Notes, &a.Resolved, &a.ResolvedBy, &a.ResolutionNotes, &a.ResolvedAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.CheckID = orEmpty(checkID)
	a.CheckLineID = orEmpty(checkLineID)
	return &a, nil
}

// Update persiste la resolución de una anomalía.
func (r *AnomalyRepo) Update(a *entity.Anomaly) error {
	query := `
		UPDATE anomalies
		SET notes = $2, resolved = $3, resolved_by = $4, resolution_notes = $5, resolved_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		a.ID, a.Notes, a.Resolved, a.ResolvedBy, a.ResolutionNotes, a.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("update anomaly: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List anomalías por estado: "open", "resolved" o vacío = todas.
func (r *AnomalyRepo) List(status string) ([]entity.Anomaly, error) {
	query := `SELECT ` + anomalyColumns + ` FROM anomalies`
	switch status {
	case "open":
		query += ` WHERE NOT resolved`
	case "resolved":
		query += ` WHERE resolved`
	}
	query += ` ORDER BY created_at DESC`
	return r.list(query)
}

// ListByCheck anomalías originadas por un conteo.
func (r *AnomalyRepo) ListByCheck(checkID string) ([]entity.Anomaly, error) {
	query := `SELECT ` + anomalyColumns + ` FROM anomalies WHERE check_id = $1 ORDER BY material_id`
	return r.list(query, checkID)
}

func (r *AnomalyRepo) list(query string, args ...any) ([]entity.Anomaly, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list anomalies: %w", err)
	}
	defer rows.Close()

	var out []entity.Anomaly
	for rows.Next() {
		a, err := scanAnomaly(rows)
		if err != nil {
			return nil, fmt.Errorf("scan anomaly: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}
