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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (id, code, name, unit, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Code, m.Name, m.Unit, m.Description, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.get("id = $1", id)
}

// GetByCode obtiene un material por código.
func (r *MaterialRepo) GetByCode(code string) (*entity.Material, error) {
	return r.get("code = $1", code)
}

func (r *MaterialRepo) get(where string, arg any) (*entity.Material, error) {
	query := `
		SELECT id, code, name, unit, description, is_active, created_at, updated_at
		FROM materials WHERE ` + where
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Code, &m.Name, &m.Unit, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// List todos los materiales ordenados por código.
func (r *MaterialRepo) List() ([]entity.Material, error) {
	query := `
		SELECT id, code, name, unit, description, is_active, created_at, updated_at
		FROM materials ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var out []entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Unit, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
