package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo consecutivos de documentos de negocio sobre PostgreSQL. Una fila
// por (prefijo, año); el upsert atómico garantiza números únicos sin escanear
// las tablas de documentos.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo del prefijo dentro del año. Dos
// transacciones concurrentes serializan sobre la fila de secuencia, nunca
// reciben el mismo número.
func (r *SequenceRepo) Next(prefix string, year int) (int, error) {
	query := `
		INSERT INTO document_sequences (prefix, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, year)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var next int
	if err := r.q.QueryRow(context.Background(), query, prefix, year).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence %s-%d: %w", prefix, year, err)
	}
	return next, nil
}
