package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo consumos de material sobre PostgreSQL. Append-only.
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

// Create persiste un consumo.
func (r *ConsumptionRepo) Create(c *entity.Consumption) error {
	query := `
		INSERT INTO consumptions (id, contractor_id, material_id, production_record_id, quantity, consumed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ContractorID, c.MaterialID, c.ProductionRecordID, c.Quantity, c.ConsumedAt, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consumption: %w", err)
	}
	return nil
}

// ListByContractor consumos de un contratista, más recientes primero.
func (r *ConsumptionRepo) ListByContractor(contractorID string) ([]entity.Consumption, error) {
	query := `
		SELECT id, contractor_id, material_id, production_record_id, quantity, consumed_at, created_at
		FROM consumptions WHERE contractor_id = $1
		ORDER BY consumed_at DESC`
	rows, err := r.q.Query(context.Background(), query, contractorID)
	if err != nil {
		return nil, fmt.Errorf("list consumptions: %w", err)
	}
	defer rows.Close()

	var out []entity.Consumption
	for rows.Next() {
		var c entity.Consumption
		if err := rows.Scan(&c.ID, &c.ContractorID, &c.MaterialID, &c.ProductionRecordID, &c.Quantity, &c.ConsumedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SumQuantityInWindow suma de consumos con consumed_at en [from, to).
func (r *ConsumptionRepo) SumQuantityInWindow(contractorID, materialID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM consumptions
		WHERE contractor_id = $1 AND material_id = $2
		  AND consumed_at >= $3 AND consumed_at < $4`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, contractorID, materialID, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum consumptions: %w", err)
	}
	return sum, nil
}
