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

var _ repository.ContractorInventoryRepository = (*ContractorInventoryRepo)(nil)

// ContractorInventoryRepo saldos de material en poder de contratista sobre
// PostgreSQL. La columna quantity no tiene CHECK de no-negatividad: un saldo
// negativo es un dato, no un error de integridad.
type ContractorInventoryRepo struct {
	q Querier
}

// NewContractorInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContractorInventoryRepository(q Querier) *ContractorInventoryRepo {
	return &ContractorInventoryRepo{q: q}
}

// Get obtiene el saldo sin bloquear. ErrNotFound si nunca se le ha entregado material.
func (r *ContractorInventoryRepo) Get(contractorID, materialID string) (*entity.ContractorInventory, error) {
	query := `
		SELECT contractor_id, material_id, quantity, last_updated
		FROM contractor_inventory WHERE contractor_id = $1 AND material_id = $2`
	var inv entity.ContractorInventory
	err := r.q.QueryRow(context.Background(), query, contractorID, materialID).Scan(
		&inv.ContractorID, &inv.MaterialID, &inv.Quantity, &inv.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get contractor inventory: %w", err)
	}
	return &inv, nil
}

// GetForUpdate obtiene el saldo bloqueando la fila (SELECT ... FOR UPDATE).
func (r *ContractorInventoryRepo) GetForUpdate(contractorID, materialID string) (*entity.ContractorInventory, error) {
	query := `
		SELECT contractor_id, material_id, quantity, last_updated
		FROM contractor_inventory WHERE contractor_id = $1 AND material_id = $2
		FOR UPDATE`
	var inv entity.ContractorInventory
	err := r.q.QueryRow(context.Background(), query, contractorID, materialID).Scan(
		&inv.ContractorID, &inv.MaterialID, &inv.Quantity, &inv.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get contractor inventory for update: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza el saldo por (contratista, material).
func (r *ContractorInventoryRepo) Upsert(inv *entity.ContractorInventory) error {
	query := `
		INSERT INTO contractor_inventory (contractor_id, material_id, quantity, last_updated)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (contractor_id, material_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, last_updated = now()`
	_, err := r.q.Exec(context.Background(), query, inv.ContractorID, inv.MaterialID, inv.Quantity)
	if err != nil {
		return fmt.Errorf("upsert contractor inventory: %w", err)
	}
	return nil
}

// ListByContractor todos los saldos del contratista, negativos incluidos.
func (r *ContractorInventoryRepo) ListByContractor(contractorID string) ([]entity.ContractorInventory, error) {
	query := `
		SELECT contractor_id, material_id, quantity, last_updated
		FROM contractor_inventory WHERE contractor_id = $1
		ORDER BY material_id`
	return r.list(query, contractorID)
}

// ListPositiveByContractor solo saldos positivos: son los materiales que una
// auditoría sin lista explícita debe contar.
func (r *ContractorInventoryRepo) ListPositiveByContractor(contractorID string) ([]entity.ContractorInventory, error) {
	query := `
		SELECT contractor_id, material_id, quantity, last_updated
		FROM contractor_inventory WHERE contractor_id = $1 AND quantity > 0
		ORDER BY material_id`
	return r.list(query, contractorID)
}

func (r *ContractorInventoryRepo) list(query string, args ...any) ([]entity.ContractorInventory, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contractor inventory: %w", err)
	}
	defer rows.Close()

	var out []entity.ContractorInventory
	for rows.Next() {
		var inv entity.ContractorInventory
		if err := rows.Scan(&inv.ContractorID, &inv.MaterialID, &inv.Quantity, &inv.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan contractor inventory: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
