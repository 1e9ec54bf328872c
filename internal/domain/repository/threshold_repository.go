package repository

import "github.com/jhoicas/ObraStock-api/internal/domain/entity"

// ThresholdRepository umbrales de varianza configurados.
// FindActive con contractorID vacío busca el umbral por material (contractor_id
// IS NULL); con contractorID busca el par exacto contratista+material. Devuelve
// domain.ErrNotFound cuando no hay fila activa.
type ThresholdRepository interface {
	Create(t *entity.VarianceThreshold) error
	Update(t *entity.VarianceThreshold) error
	FindActive(contractorID, materialID string) (*entity.VarianceThreshold, error)
	List() ([]entity.VarianceThreshold, error)
}
