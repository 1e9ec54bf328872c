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

var _ repository.FinishedGoodRepository = (*FinishedGoodRepo)(nil)

// FinishedGoodRepo implementación de FinishedGoodRepository sobre PostgreSQL.
type FinishedGoodRepo struct {
	q Querier
}

// NewFinishedGoodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinishedGoodRepository(q Querier) *FinishedGoodRepo {
	return &FinishedGoodRepo{q: q}
}

// Create persiste un producto terminado.
func (r *FinishedGoodRepo) Create(fg *entity.FinishedGood) error {
	query := `
		INSERT INTO finished_goods (id, code, name, unit, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		fg.ID, fg.Code, fg.Name, fg.Unit, fg.IsActive, fg.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert finished good: %w", err)
	}
	return nil
}

// GetByID obtiene un producto terminado por ID.
func (r *FinishedGoodRepo) GetByID(id string) (*entity.FinishedGood, error) {
	query := `
		SELECT id, code, name, unit, is_active, created_at
		FROM finished_goods WHERE id = $1`
	var fg entity.FinishedGood
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&fg.ID, &fg.Code, &fg.Name, &fg.Unit, &fg.IsActive, &fg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get finished good: %w", err)
	}
	return &fg, nil
}

// List todo el producto terminado ordenado por código.
func (r *FinishedGoodRepo) List() ([]entity.FinishedGood, error) {
	query := `
		SELECT id, code, name, unit, is_active, created_at
		FROM finished_goods ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list finished goods: %w", err)
	}
	defer rows.Close()

	var out []entity.FinishedGood
	for rows.Next() {
		var fg entity.FinishedGood
		if err := rows.Scan(&fg.ID, &fg.Code, &fg.Name, &fg.Unit, &fg.IsActive, &fg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan finished good: %w", err)
		}
		out = append(out, fg)
	}
	return out, rows.Err()
}

// ListBOM lista de materiales del producto terminado.
func (r *FinishedGoodRepo) ListBOM(finishedGoodID string) ([]entity.BOMItem, error) {
	query := `
		SELECT id, finished_good_id, material_id, quantity_per_unit, created_at
		FROM bom_items WHERE finished_good_id = $1
		ORDER BY material_id`
	rows, err := r.q.Query(context.Background(), query, finishedGoodID)
	if err != nil {
		return nil, fmt.Errorf("list bom: %w", err)
	}
	defer rows.Close()

	var out []entity.BOMItem
	for rows.Next() {
		var item entity.BOMItem
		if err := rows.Scan(&item.ID, &item.FinishedGoodID, &item.MaterialID, &item.QuantityPerUnit, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bom item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
