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

var _ repository.WarehouseInventoryRepository = (*WarehouseInventoryRepo)(nil)

// WarehouseInventoryRepo saldos de material por bodega sobre PostgreSQL.
type WarehouseInventoryRepo struct {
	q Querier
}

// NewWarehouseInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseInventoryRepository(q Querier) *WarehouseInventoryRepo {
	return &WarehouseInventoryRepo{q: q}
}

const warehouseInventoryColumns = `warehouse_id, material_id, current_quantity, unit_of_measure, reorder_point, reorder_quantity, last_updated`

func scanWarehouseInventory(row pgx.Row) (*entity.WarehouseInventory, error) {
	var inv entity.WarehouseInventory
	err := row.Scan(
		&inv.WarehouseID, &inv.MaterialID, &inv.CurrentQuantity,
		&inv.UnitOfMeasure, &inv.ReorderPoint, &inv.ReorderQuantity, &inv.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Get obtiene el saldo sin bloquear. ErrNotFound si nunca ha habido stock.
func (r *WarehouseInventoryRepo) Get(warehouseID, materialID string) (*entity.WarehouseInventory, error) {
	query := `
		SELECT ` + warehouseInventoryColumns + `
		FROM warehouse_inventory WHERE warehouse_id = $1 AND material_id = $2`
	inv, err := scanWarehouseInventory(r.q.QueryRow(context.Background(), query, warehouseID, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get warehouse inventory: %w", err)
	}
	return inv, nil
}

// GetForUpdate obtiene el saldo bloqueando la fila (SELECT ... FOR UPDATE).
// Solo tiene sentido dentro de una transacción del TxRunner.
func (r *WarehouseInventoryRepo) GetForUpdate(warehouseID, materialID string) (*entity.WarehouseInventory, error) {
	query := `
		SELECT ` + warehouseInventoryColumns + `
		FROM warehouse_inventory WHERE warehouse_id = $1 AND material_id = $2
		FOR UPDATE`
	inv, err := scanWarehouseInventory(r.q.QueryRow(context.Background(), query, warehouseID, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get warehouse inventory for update: %w", err)
	}
	return inv, nil
}

// Upsert inserta o actualiza el saldo por (bodega, material).
func (r *WarehouseInventoryRepo) Upsert(inv *entity.WarehouseInventory) error {
	query := `
		INSERT INTO warehouse_inventory (warehouse_id, material_id, current_quantity, unit_of_measure, reorder_point, reorder_quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (warehouse_id, material_id)
		DO UPDATE SET current_quantity = EXCLUDED.current_quantity,
			unit_of_measure = EXCLUDED.unit_of_measure,
			reorder_point = EXCLUDED.reorder_point,
			reorder_quantity = EXCLUDED.reorder_quantity,
			last_updated = now()`
	_, err := r.q.Exec(context.Background(), query,
		inv.WarehouseID, inv.MaterialID, inv.CurrentQuantity,
		inv.UnitOfMeasure, inv.ReorderPoint, inv.ReorderQuantity,
	)
	if err != nil {
		return fmt.Errorf("upsert warehouse inventory: %w", err)
	}
	return nil
}

// ListByWarehouse saldos de una bodega ordenados por material.
func (r *WarehouseInventoryRepo) ListByWarehouse(warehouseID string) ([]entity.WarehouseInventory, error) {
	query := `
		SELECT ` + warehouseInventoryColumns + `
		FROM warehouse_inventory WHERE warehouse_id = $1
		ORDER BY material_id`
	return r.list(query, warehouseID)
}

// ListBelowReorderPoint saldos bajo su punto de reorden en todas las bodegas.
func (r *WarehouseInventoryRepo) ListBelowReorderPoint() ([]entity.WarehouseInventory, error) {
	query := `
		SELECT ` + warehouseInventoryColumns + `
		FROM warehouse_inventory
		WHERE reorder_point > 0 AND current_quantity < reorder_point
		ORDER BY warehouse_id, material_id`
	return r.list(query)
}

func (r *WarehouseInventoryRepo) list(query string, args ...any) ([]entity.WarehouseInventory, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouse inventory: %w", err)
	}
	defer rows.Close()

	var out []entity.WarehouseInventory
	for rows.Next() {
		var inv entity.WarehouseInventory
		if err := rows.Scan(&inv.WarehouseID, &inv.MaterialID, &inv.CurrentQuantity,
			&inv.UnitOfMeasure, &inv.ReorderPoint, &inv.ReorderQuantity, &inv.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan warehouse inventory: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
