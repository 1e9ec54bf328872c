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

var _ repository.UnitConversionRepository = (*ConversionRepo)(nil)

// ConversionRepo implementación de UnitConversionRepository sobre PostgreSQL.
type ConversionRepo struct {
	q Querier
}

// NewConversionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConversionRepository(q Querier) *ConversionRepo {
	return &ConversionRepo{q: q}
}

// Create persiste un factor de conversión.
func (r *ConversionRepo) Create(c *entity.UnitConversion) error {
	query := `
		INSERT INTO unit_conversions (id, material_id, from_unit, to_unit, factor, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.MaterialID, c.FromUnit, c.ToUnit, c.Factor, c.IsActive, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit conversion: %w", err)
	}
	return nil
}

// Find busca la fila activa exacta (material, from, to). Las unidades llegan ya
// normalizadas desde el servicio de conversión.
func (r *ConversionRepo) Find(materialID, fromUnit, toUnit string) (*entity.UnitConversion, error) {
	query := `
		SELECT id, material_id, from_unit, to_unit, factor, is_active, created_at
		FROM unit_conversions
		WHERE material_id = $1 AND from_unit = $2 AND to_unit = $3 AND is_active`
	var c entity.UnitConversion
	err := r.q.QueryRow(context.Background(), query, materialID, fromUnit, toUnit).Scan(
		&c.ID, &c.MaterialID, &c.FromUnit, &c.ToUnit, &c.Factor, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find unit conversion: %w", err)
	}
	return &c, nil
}

// ListByMaterial factores activos de un material.
func (r *ConversionRepo) ListByMaterial(materialID string) ([]entity.UnitConversion, error) {
	query := `
		SELECT id, material_id, from_unit, to_unit, factor, is_active, created_at
		FROM unit_conversions WHERE material_id = $1 AND is_active
		ORDER BY from_unit, to_unit`
	rows, err := r.q.Query(context.Background(), query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list unit conversions: %w", err)
	}
	defer rows.Close()

	var out []entity.UnitConversion
	for rows.Next() {
		var c entity.UnitConversion
		if err := rows.Scan(&c.ID, &c.MaterialID, &c.FromUnit, &c.ToUnit, &c.Factor, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit conversion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
