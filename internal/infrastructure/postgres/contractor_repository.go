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

var _ repository.ContractorRepository = (*ContractorRepo)(nil)

// ContractorRepo implementación de ContractorRepository sobre PostgreSQL.
type ContractorRepo struct {
	q Querier
}

// NewContractorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContractorRepository(q Querier) *ContractorRepo {
	return &ContractorRepo{q: q}
}

// Create persiste un contratista.
func (r *ContractorRepo) Create(c *entity.Contractor) error {
	query := `
		INSERT INTO contractors (id, code, name, contact_name, phone, email, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Code, c.Name, c.ContactName, c.Phone, c.Email, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contractor: %w", err)
	}
	return nil
}

// GetByID obtiene un contratista por ID.
func (r *ContractorRepo) GetByID(id string) (*entity.Contractor, error) {
	query := `
		SELECT id, code, name, contact_name, phone, email, is_active, created_at, updated_at
		FROM contractors WHERE id = $1`
	var c entity.Contractor
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Code, &c.Name, &c.ContactName, &c.Phone, &c.Email, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get contractor: %w", err)
	}
	return &c, nil
}

// List todos los contratistas ordenados por código.
func (r *ContractorRepo) List() ([]entity.Contractor, error) {
	query := `
		SELECT id, code, name, contact_name, phone, email, is_active, created_at, updated_at
		FROM contractors ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	defer rows.Close()

	var out []entity.Contractor
	for rows.Next() {
		var c entity.Contractor
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.ContactName, &c.Phone, &c.Email, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contractor: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
