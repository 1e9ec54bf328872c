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

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo reportes de producción sobre PostgreSQL.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// Create persiste un reporte de producción.
func (r *ProductionRepo) Create(p *entity.ProductionRecord) error {
	query := `
		INSERT INTO production_records (id, contractor_id, finished_good_id, quantity, reported_by, notes, produced_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ContractorID, p.FinishedGoodID, p.Quantity, p.ReportedBy, p.Notes, p.ProducedAt, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production record: %w", err)
	}
	return nil
}

// GetByID obtiene un reporte por ID.
func (r *ProductionRepo) GetByID(id string) (*entity.ProductionRecord, error) {
	query := `
		SELECT id, contractor_id, finished_good_id, quantity, reported_by, notes, produced_at, created_at
		FROM production_records WHERE id = $1`
	var p entity.ProductionRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ContractorID, &p.FinishedGoodID, &p.Quantity, &p.ReportedBy, &p.Notes, &p.ProducedAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get production record: %w", err)
	}
	return &p, nil
}

// ListByContractor reportes de un contratista, más recientes primero.
func (r *ProductionRepo) ListByContractor(contractorID string) ([]entity.ProductionRecord, error) {
	query := `
		SELECT id, contractor_id, finished_good_id, quantity, reported_by, notes, produced_at, created_at
		FROM production_records WHERE contractor_id = $1
		ORDER BY produced_at DESC`
	rows, err := r.q.Query(context.Background(), query, contractorID)
	if err != nil {
		return nil, fmt.Errorf("list production records: %w", err)
	}
	defer rows.Close()

	var out []entity.ProductionRecord
	for rows.Next() {
		var p entity.ProductionRecord
		if err := rows.Scan(&p.ID, &p.ContractorID, &p.FinishedGoodID, &p.Quantity, &p.ReportedBy, &p.Notes, &p.ProducedAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production record: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
