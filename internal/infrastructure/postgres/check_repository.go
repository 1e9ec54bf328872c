package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

var _ repository.CheckRepository = (*CheckRepo)(nil)

// CheckRepo conteos de inventario sobre PostgreSQL.
type CheckRepo struct {
	q Querier
}

// NewCheckRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCheckRepository(q Querier) *CheckRepo {
	return &CheckRepo{q: q}
}

const checkColumns = `id, check_number, kind, contractor_id, check_date, counted_by, audit_type, period_type, period_start, period_end, status, submitted_at, analyzed_at, reviewed_by, reviewed_at, resolved_at, notes, created_at, updated_at`

const checkLineColumns = `id, check_id, material_id, unit_of_measure, physical_count, counter_notes, expected_quantity, variance, variance_pct, threshold_used, is_anomaly, anomaly_id, created_at, updated_at`

// Create persiste la cabecera del conteo.
func (r *CheckRepo) Create(c *entity.InventoryCheck) error {
	query := `
		INSERT INTO inventory_checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CheckNumber, c.Kind, c.ContractorID, c.CheckDate, c.CountedBy,
		c.AuditType, c.PeriodType, c.PeriodStart, c.PeriodEnd, c.Status,
		c.SubmittedAt, c.AnalyzedAt, c.ReviewedBy, c.ReviewedAt, c.ResolvedAt,
		c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory check: %w", err)
	}
	return nil
}

// CreateLines persiste las líneas del conteo.
func (r *CheckRepo) CreateLines(lines []entity.InventoryCheckLine) error {
	query := `
		INSERT INTO inventory_check_lines (` + checkLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for _, l := range lines {
		_, err := r.q.Exec(context.Background(), query,
			l.ID, l.CheckID, l.MaterialID, l.UnitOfMeasure,
			l.PhysicalCount, l.CounterNotes,
			l.ExpectedQuantity, l.Variance, l.VariancePct, l.ThresholdUsed,
			l.IsAnomaly, nullIfEmpty(l.AnomalyID), l.CreatedAt, l.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert check line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la cabecera de un conteo.
func (r *CheckRepo) GetByID(id string) (*entity.InventoryCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM inventory_checks WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene la cabecera bloqueando la fila. Serializa las
// transiciones de estado del conteo.
func (r *CheckRepo) GetByIDForUpdate(id string) (*entity.InventoryCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM inventory_checks WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *CheckRepo) scanOne(row pgx.Row) (*entity.InventoryCheck, error) {
	c, err := scanCheck(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory check: %w", err)
	}
	return c, nil
}

func scanCheck(row pgx.Row) (*entity.InventoryCheck, error) {
	var c entity.InventoryCheck
	err := row.Scan(
		&c.ID, &c.CheckNumber, &c.Kind, &c.ContractorID, &c.CheckDate, &c.CountedBy,
		&c.AuditType, &c.PeriodType, &c.PeriodStart, &c.PeriodEnd, &c.Status,
		&c.SubmittedAt, &c.AnalyzedAt, &c.ReviewedBy, &c.ReviewedAt, &c.ResolvedAt,
		&c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateHeader persiste la transición de estado y los sellos de tiempo.
func (r *CheckRepo) UpdateHeader(c *entity.InventoryCheck) error {
	query := `
		UPDATE inventory_checks
		SET status = $2, submitted_at = $3, analyzed_at = $4, reviewed_by = $5,
			reviewed_at = $6, resolved_at = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Status, c.SubmittedAt, c.AnalyzedAt, c.ReviewedBy,
		c.ReviewedAt, c.ResolvedAt, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory check: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLine persiste el conteo físico y los campos calculados de una línea.
func (r *CheckRepo) UpdateLine(l *entity.InventoryCheckLine) error {
	query := `
		UPDATE inventory_check_lines
		SET physical_count = $2, counter_notes = $3, expected_quantity = $4,
			variance = $5, variance_pct = $6, threshold_used = $7,
			is_anomaly = $8, anomaly_id = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		l.ID, l.PhysicalCount, l.CounterNotes, l.ExpectedQuantity,
		l.Variance, l.VariancePct, l.ThresholdUsed,
		l.IsAnomaly, nullIfEmpty(l.AnomalyID), l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update check line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLines líneas de un conteo ordenadas por material.
func (r *CheckRepo) ListLines(checkID string) ([]entity.InventoryCheckLine, error) {
	query := `
		SELECT ` + checkLineColumns + `
		FROM inventory_check_lines WHERE check_id = $1
		ORDER BY material_id`
	rows, err := r.q.Query(context.Background(), query, checkID)
	if err != nil {
		return nil, fmt.Errorf("list check lines: %w", err)
	}
	defer rows.Close()

	var out []entity.InventoryCheckLine
	for rows.Next() {
		var l entity.InventoryCheckLine
		var anomalyID *string
		if err := rows.Scan(
			&l.ID, &l.CheckID, &l.MaterialID, &l.UnitOfMeasure,
			&l.PhysicalCount, &l.CounterNotes,
			&l.ExpectedQuantity, &l.Variance, &l.VariancePct, &l.ThresholdUsed,
			&l.IsAnomaly, &anomalyID, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan check line: %w", err)
		}
		l.AnomalyID = orEmpty(anomalyID)
		out = append(out, l)
	}
	return out, rows.Err()
}

// FindOpenByContractor conteo abierto de la clase dada, si existe. Cerrados,
// aceptados y disputados no cuentan como abiertos.
func (r *CheckRepo) FindOpenByContractor(contractorID, kind string) (*entity.InventoryCheck, error) {
	query := `
		SELECT ` + checkColumns + `
		FROM inventory_checks
		WHERE contractor_id = $1 AND kind = $2
		  AND status NOT IN ($3, $4, $5)
		ORDER BY created_at DESC
		LIMIT 1`
	c, err := scanCheck(r.q.QueryRow(context.Background(), query, contractorID, kind,
		entity.CheckStatusClosed, entity.CheckStatusAccepted, entity.CheckStatusDisputed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find open check: %w", err)
	}
	return c, nil
}

// ListByContractor conteos de un contratista, más recientes primero.
func (r *CheckRepo) ListByContractor(contractorID string) ([]entity.InventoryCheck, error) {
	query := `
		SELECT ` + checkColumns + `
		FROM inventory_checks WHERE contractor_id = $1
		ORDER BY check_date DESC, created_at DESC`
	return r.listChecks(query, contractorID)
}

// List conteos filtrados por clase y estado; vacío = sin filtro.
func (r *CheckRepo) List(kind, status string) ([]entity.InventoryCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM inventory_checks WHERE 1=1`
	var args []any
	if kind != "" {
		args = append(args, kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += ` ORDER BY check_date DESC, created_at DESC`
	return r.listChecks(query, args...)
}

func (r *CheckRepo) listChecks(query string, args ...any) ([]entity.InventoryCheck, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory checks: %w", err)
	}
	defer rows.Close()

	var out []entity.InventoryCheck
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory check: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// LastResolvedCount línea del conteo resuelto más reciente que incluyó al par
// contratista+material con check_date estrictamente anterior a before. Es la
// línea base del cálculo de inventario esperado; un conteo del mismo día no
// califica porque dejaría fuera los movimientos de esa fecha.
func (r *CheckRepo) LastResolvedCount(contractorID, materialID string, before time.Time) (*entity.InventoryCheckLine, *entity.InventoryCheck, error) {
	query := `
		SELECT l.id, l.check_id, l.material_id, l.unit_of_measure,
			l.physical_count, l.counter_notes,
			l.expected_quantity, l.variance, l.variance_pct, l.threshold_used,
			l.is_anomaly, l.anomaly_id, l.created_at, l.updated_at,
			c.id, c.check_number, c.kind, c.contractor_id, c.check_date, c.counted_by,
			c.audit_type, c.period_type, c.period_start, c.period_end, c.status,
			c.submitted_at, c.analyzed_at, c.reviewed_by, c.reviewed_at, c.resolved_at,
			c.notes, c.created_at, c.updated_at
		FROM inventory_check_lines l
		JOIN inventory_checks c ON c.id = l.check_id
		WHERE c.contractor_id = $1 AND l.material_id = $2
		  AND c.resolved_at IS NOT NULL AND c.check_date < $3
		ORDER BY c.check_date DESC, c.resolved_at DESC
		LIMIT 1`
	var l entity.InventoryCheckLine
	var c entity.InventoryCheck
	var anomalyID *string
	err := r.q.QueryRow(context.Background(), query, contractorID, materialID, before).Scan(
		&l.ID, &l.CheckID, &l.MaterialID, &l.UnitOfMeasure,
		&l.PhysicalCount, &l.CounterNotes,
		&l.ExpectedQuantity, &l.Variance, &l.VariancePct, &l.ThresholdUsed,
		&l.IsAnomaly, &anomalyID, &l.CreatedAt, &l.UpdatedAt,
		&c.ID, &c.CheckNumber, &c.Kind, &c.ContractorID, &c.CheckDate, &c.CountedBy,
		&c.AuditType, &c.PeriodType, &c.PeriodStart, &c.PeriodEnd, &c.Status,
		&c.SubmittedAt, &c.AnalyzedAt, &c.ReviewedBy, &c.ReviewedAt, &c.ResolvedAt,
		&c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("last resolved count: %w", err)
	}
	l.AnomalyID = orEmpty(anomalyID)
	return &l, &c, nil
}
