package threshold

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// Fuentes del umbral resuelto, para trazabilidad en reportes.
const (
	SourceContractor = "CONTRACTOR_MATERIAL"
	SourceMaterial   = "MATERIAL_DEFAULT"
	SourceSystem     = "SYSTEM_DEFAULT"
)

// Resolution umbral efectivo y de dónde salió.
type Resolution struct {
	ThresholdPct decimal.Decimal
	Source       string
	ThresholdID  string // vacío para el default del sistema
}

// Strategy un nivel de la cascada de resolución. Devuelve (nil, nil) cuando el
// nivel no tiene configuración para el par; un error corta la cascada.
type Strategy interface {
	Lookup(contractorID, materialID string) (*Resolution, error)
}

// Resolver recorre estrategias en orden de precedencia y devuelve la primera
// que responde. La última (default del sistema) siempre responde, así que la
// resolución es total.
type Resolver struct {
	strategies []Strategy
}

// NewResolver cascada estándar: contratista+material, material, sistema.
// El default del sistema viene de configuración, no está cableado aquí.
func NewResolver(repo repository.ThresholdRepository, systemDefaultPct decimal.Decimal) *Resolver {
	return &Resolver{strategies: []Strategy{
		&contractorMaterialStrategy{repo: repo},
		&materialDefaultStrategy{repo: repo},
		&systemDefaultStrategy{pct: systemDefaultPct},
	}}
}

// Resolve devuelve el umbral efectivo para el par contratista+material.
func (r *Resolver) Resolve(contractorID, materialID string) (*Resolution, error) {
	for _, s := range r.strategies {
		res, err := s.Lookup(contractorID, materialID)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
	// Inalcanzable con la cascada estándar; guard por si alguien arma un
	// Resolver sin nivel terminal.
	return nil, domain.ErrNotFound
}

type contractorMaterialStrategy struct {
	repo repository.ThresholdRepository
}

func (s *contractorMaterialStrategy) Lookup(contractorID, materialID string) (*Resolution, error) {
	if contractorID == "" {
		return nil, nil
	}
	row, err := s.repo.FindActive(contractorID, materialID)
	if err == domain.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromRow(row, SourceContractor), nil
}

type materialDefaultStrategy struct {
	repo repository.ThresholdRepository
}

func (s *materialDefaultStrategy) Lookup(_, materialID string) (*Resolution, error) {
	row, err := s.repo.FindActive("", materialID)
	if err == domain.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromRow(row, SourceMaterial), nil
}

type systemDefaultStrategy struct {
	pct decimal.Decimal
}

func (s *systemDefaultStrategy) Lookup(_, _ string) (*Resolution, error) {
	return &Resolution{ThresholdPct: s.pct, Source: SourceSystem}, nil
}

func fromRow(row *entity.VarianceThreshold, source string) *Resolution {
	return &Resolution{ThresholdPct: row.ThresholdPct, Source: source, ThresholdID: row.ID}
}
