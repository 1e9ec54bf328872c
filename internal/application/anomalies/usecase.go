// Package anomalies administración del ciclo de investigación de anomalías.
package anomalies

import (
	"time"

	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// UseCase consultas y resolución de anomalías. Las anomalías nunca se borran:
// la resolución solo las marca con quién y por qué.
type UseCase struct {
	anomalyRepo repository.AnomalyRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(anomalyRepo repository.AnomalyRepository) *UseCase {
	return &UseCase{anomalyRepo: anomalyRepo}
}

// List anomalías por estado: "open", "resolved" o vacío = todas.
func (uc *UseCase) List(status string) ([]entity.Anomaly, error) {
	return uc.anomalyRepo.List(status)
}

// Get una anomalía por id.
func (uc *UseCase) Get(id string) (*entity.Anomaly, error) {
	return uc.anomalyRepo.GetByID(id)
}

// Resolve marca la anomalía como resuelta con la explicación encontrada.
func (uc *UseCase) Resolve(id, resolvedBy, notes string) (*entity.Anomaly, error) {
	if id == "" || resolvedBy == "" || notes == "" {
		return nil, domain.ErrInvalidInput
	}
	anomaly, err := uc.anomalyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if anomaly.Resolved {
		return nil, domain.ErrInvalidState
	}
	now := time.Now()
	anomaly.Resolved = true
	anomaly.ResolvedBy = resolvedBy
	anomaly.ResolutionNotes = notes
	anomaly.ResolvedAt = &now
	if err := uc.anomalyRepo.Update(anomaly); err != nil {
		return nil, err
	}
	return anomaly, nil
}
