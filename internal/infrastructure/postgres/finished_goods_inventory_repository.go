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

var _ repository.FinishedGoodsInventoryRepository = (*FinishedGoodsInventoryRepo)(nil)

// FinishedGoodsInventoryRepo saldos de producto terminado por bodega sobre PostgreSQL.
type FinishedGoodsInventoryRepo struct {
	q Querier
}

// NewFinishedGoodsInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinishedGoodsInventoryRepository(q Querier) *FinishedGoodsInventoryRepo {
	return &FinishedGoodsInventoryRepo{q: q}
}

// Get obtiene el saldo sin bloquear.
func (r *FinishedGoodsInventoryRepo) Get(warehouseID, finishedGoodID string) (*entity.FinishedGoodsInventory, error) {
	query := `
		SELECT warehouse_id, finished_good_id, current_quantity, unit_of_measure, last_updated
		FROM finished_goods_inventory WHERE warehouse_id = $1 AND finished_good_id = $2`
	return r.getOne(query, warehouseID, finishedGoodID)
}

// GetForUpdate obtiene el saldo bloqueando la fila (SELECT ... FOR UPDATE).
func (r *FinishedGoodsInventoryRepo) GetForUpdate(warehouseID, finishedGoodID string) (*entity.FinishedGoodsInventory, error) {
	query := `
		SELECT warehouse_id, finished_good_id, current_quantity, unit_of_measure, last_updated
		FROM finished_goods_inventory WHERE warehouse_id = $1 AND finished_good_id = $2
		FOR UPDATE`
	return r.getOne(query, warehouseID, finishedGoodID)
}

func (r *FinishedGoodsInventoryRepo) getOne(query, warehouseID, finishedGoodID string) (*entity.FinishedGoodsInventory, error) {
	var inv entity.FinishedGoodsInventory
	err := r.q.QueryRow(context.Background(), query, warehouseID, finishedGoodID).Scan(
		&inv.WarehouseID, &inv.FinishedGoodID, &inv.CurrentQuantity, &inv.UnitOfMeasure, &inv.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get finished goods inventory: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza el saldo por (bodega, producto terminado).
func (r *FinishedGoodsInventoryRepo) Upsert(inv *entity.FinishedGoodsInventory) error {
	query := `
		INSERT INTO finished_goods_inventory (warehouse_id, finished_good_id, current_quantity, unit_of_measure, last_updated)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (warehouse_id, finished_good_id)
		DO UPDATE SET current_quantity = EXCLUDED.current_quantity,
			unit_of_measure = EXCLUDED.unit_of_measure,
			last_updated = now()`
	_, err := r.q.Exec(context.Background(), query,
		inv.WarehouseID, inv.FinishedGoodID, inv.CurrentQuantity, inv.UnitOfMeasure,
	)
	if err != nil {
		return fmt.Errorf("upsert finished goods inventory: %w", err)
	}
	return nil
}

// ListByWarehouse saldos de producto terminado de una bodega.
func (r *FinishedGoodsInventoryRepo) ListByWarehouse(warehouseID string) ([]entity.FinishedGoodsInventory, error) {
	query := `
		SELECT warehouse_id, finished_good_id, current_quantity, unit_of_measure, last_updated
		FROM finished_goods_inventory WHERE warehouse_id = $1
		ORDER BY finished_good_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list finished goods inventory: %w", err)
	}
	defer rows.Close()

	var out []entity.FinishedGoodsInventory
	for rows.Next() {
		var inv entity.FinishedGoodsInventory
		if err := rows.Scan(&inv.WarehouseID, &inv.FinishedGoodID, &inv.CurrentQuantity, &inv.UnitOfMeasure, &inv.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan finished goods inventory: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
