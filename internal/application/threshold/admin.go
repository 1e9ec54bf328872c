package threshold

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// AdminUseCase administración de umbrales configurados.
type AdminUseCase struct {
	repo           repository.ThresholdRepository
	materialRepo   repository.MaterialRepository
	contractorRepo repository.ContractorRepository
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(repo repository.ThresholdRepository, materialRepo repository.MaterialRepository, contractorRepo repository.ContractorRepository) *AdminUseCase {
	return &AdminUseCase{repo: repo, materialRepo: materialRepo, contractorRepo: contractorRepo}
}

// SetThresholdInput alta o reemplazo de un umbral.
type SetThresholdInput struct {
	ContractorID string // vacío = default del material
	MaterialID   string
	ThresholdPct decimal.Decimal
	Notes        string
	CreatedBy    string
}

// Set crea el umbral para el par (o el default del material). Si ya existe una
// fila activa para el mismo alcance, la desactiva: el historial se conserva,
// solo cambia cuál está vigente.
func (uc *AdminUseCase) Set(input SetThresholdInput) (*entity.VarianceThreshold, error) {
	if input.MaterialID == "" {
		return nil, domain.ErrInvalidInput
	}
	// Umbral en (0, 100]: cero anularía toda tolerancia y >100 no filtra nada.
	if !input.ThresholdPct.IsPositive() || input.ThresholdPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.materialRepo.GetByID(input.MaterialID); err != nil {
		return nil, err
	}
	if input.ContractorID != "" {
		if _, err := uc.contractorRepo.GetByID(input.ContractorID); err != nil {
			return nil, err
		}
	}

	if current, err := uc.repo.FindActive(input.ContractorID, input.MaterialID); err == nil {
		current.IsActive = false
		current.UpdatedAt = time.Now()
		if err := uc.repo.Update(current); err != nil {
			return nil, err
		}
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	now := time.Now()
	row := &entity.VarianceThreshold{
		ID:           uuid.New().String(),
		ContractorID: input.ContractorID,
		MaterialID:   input.MaterialID,
		ThresholdPct: input.ThresholdPct,
		IsActive:     true,
		Notes:        input.Notes,
		CreatedBy:    input.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(row); err != nil {
		return nil, err
	}
	return row, nil
}

// Deactivate apaga un umbral activo; la cascada cae al siguiente nivel.
func (uc *AdminUseCase) Deactivate(contractorID, materialID string) error {
	current, err := uc.repo.FindActive(contractorID, materialID)
	if err != nil {
		return err
	}
	current.IsActive = false
	current.UpdatedAt = time.Now()
	return uc.repo.Update(current)
}

// List todos los umbrales configurados.
func (uc *AdminUseCase) List() ([]entity.VarianceThreshold, error) {
	return uc.repo.List()
}
