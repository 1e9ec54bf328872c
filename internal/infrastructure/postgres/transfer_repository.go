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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo transferencias entre bodegas sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, transfer_number, source_warehouse_id, destination_warehouse_id, transfer_type, status, transfer_date, requested_by, completed_by, completed_at, notes, created_at, updated_at`

// Create persiste la transferencia con sus líneas.
func (r *TransferRepo) Create(t *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TransferNumber, t.SourceWarehouseID, t.DestinationWarehouseID,
		t.TransferType, t.Status, t.TransferDate, t.RequestedBy,
		t.CompletedBy, t.CompletedAt, t.Notes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	for _, line := range t.Lines {
		lineQuery := `
			INSERT INTO stock_transfer_lines (id, transfer_id, material_id, finished_good_id, quantity, unit_of_measure)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, t.ID, nullIfEmpty(line.MaterialID), nullIfEmpty(line.FinishedGoodID),
			line.Quantity, line.UnitOfMeasure,
		)
		if err != nil {
			return fmt.Errorf("insert transfer line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la transferencia con sus líneas.
func (r *TransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate obtiene la transferencia bloqueando la cabecera. Evita que
// dos completados concurrentes muevan el inventario dos veces.
func (r *TransferRepo) GetByIDForUpdate(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *TransferRepo) getOne(query, id string) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.TransferNumber, &t.SourceWarehouseID, &t.DestinationWarehouseID,
		&t.TransferType, &t.Status, &t.TransferDate, &t.RequestedBy,
		&t.CompletedBy, &t.CompletedAt, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	lines, err := r.listLines(t.ID)
	if err != nil {
		return nil, err
	}
	t.Lines = lines
	return &t, nil
}

func (r *TransferRepo) listLines(transferID string) ([]entity.StockTransferLine, error) {
	query := `
		SELECT id, transfer_id, material_id, finished_good_id, quantity, unit_of_measure
		FROM stock_transfer_lines WHERE transfer_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer lines: %w", err)
	}
	defer rows.Close()

	var out []entity.StockTransferLine
	for rows.Next() {
		var l entity.StockTransferLine
		var materialID, finishedGoodID *string
		if err := rows.Scan(&l.ID, &l.TransferID, &materialID, &finishedGoodID, &l.Quantity, &l.UnitOfMeasure); err != nil {
			return nil, fmt.Errorf("scan transfer line: %w", err)
		}
		l.MaterialID = orEmpty(materialID)
		l.FinishedGoodID = orEmpty(finishedGoodID)
		out = append(out, l)
	}
	return out, rows.Err()
}

// UpdateHeader persiste la transición de estado y los datos de completado.
// Las líneas son inmutables una vez creada la transferencia.
func (r *TransferRepo) UpdateHeader(t *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers
		SET status = $2, completed_by = $3, completed_at = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		t.ID, t.Status, t.CompletedBy, t.CompletedAt, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List todas las transferencias, más recientes primero (sin líneas).
func (r *TransferRepo) List() ([]entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers ORDER BY transfer_date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []entity.StockTransfer
	for rows.Next() {
		var t entity.StockTransfer
		if err := rows.Scan(&t.ID, &t.TransferNumber, &t.SourceWarehouseID, &t.DestinationWarehouseID,
			&t.TransferType, &t.Status, &t.TransferDate, &t.RequestedBy,
			&t.CompletedBy, &t.CompletedAt, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
