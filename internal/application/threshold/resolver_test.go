package threshold_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ObraStock-api/internal/application/threshold"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
)

type fakeThresholdRepo struct {
	rows []*entity.VarianceThreshold
}

func (f *fakeThresholdRepo) Create(t *entity.VarianceThreshold) error {
	f.rows = append(f.rows, t)
	return nil
}

func (f *fakeThresholdRepo) Update(*entity.VarianceThreshold) error { return nil }

func (f *fakeThresholdRepo) FindActive(contractorID, materialID string) (*entity.VarianceThreshold, error) {
	for _, r := range f.rows {
		if r.IsActive && r.ContractorID == contractorID && r.MaterialID == materialID {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeThresholdRepo) List() ([]entity.VarianceThreshold, error) { return nil, nil }

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// TestResolve_Precedencia con los tres niveles configurados gana el par
// contratista+material.
func TestResolve_Precedencia(t *testing.T) {
	repo := &fakeThresholdRepo{rows: []*entity.VarianceThreshold{
		{ID: "th-mat", MaterialID: "mat-1", ThresholdPct: d("5"), IsActive: true},
		{ID: "th-ct", ContractorID: "ct-1", MaterialID: "mat-1", ThresholdPct: d("1.5"), IsActive: true},
	}}
	r := threshold.NewResolver(repo, d("2"))

	res, err := r.Resolve("ct-1", "mat-1")
	require.NoError(t, err)
	assert.Equal(t, threshold.SourceContractor, res.Source)
	assert.True(t, res.ThresholdPct.Equal(d("1.5")))
	assert.Equal(t, "th-ct", res.ThresholdID)
}

// TestResolve_CaeAlMaterial sin fila por contratista cae al default del material.
func TestResolve_CaeAlMaterial(t *testing.T) {
	repo := &fakeThresholdRepo{rows: []*entity.VarianceThreshold{
		{ID: "th-mat", MaterialID: "mat-1", ThresholdPct: d("5"), IsActive: true},
	}}
	r := threshold.NewResolver(repo, d("2"))

	res, err := r.Resolve("ct-9", "mat-1")
	require.NoError(t, err)
	assert.Equal(t, threshold.SourceMaterial, res.Source)
	assert.True(t, res.ThresholdPct.Equal(d("5")))
}

// TestResolve_DefaultDelSistema sin configuración alguna responde el default
// inyectado; la resolución nunca falla por falta de filas.
func TestResolve_DefaultDelSistema(t *testing.T) {
	r := threshold.NewResolver(&fakeThresholdRepo{}, d("2"))

	res, err := r.Resolve("ct-1", "mat-1")
	require.NoError(t, err)
	assert.Equal(t, threshold.SourceSystem, res.Source)
	assert.True(t, res.ThresholdPct.Equal(d("2")))
	assert.Empty(t, res.ThresholdID)
}

// TestResolve_FilaInactivaNoCuenta una fila desactivada es invisible a la cascada.
func TestResolve_FilaInactivaNoCuenta(t *testing.T) {
	repo := &fakeThresholdRepo{rows: []*entity.VarianceThreshold{
		{ID: "th-ct", ContractorID: "ct-1", MaterialID: "mat-1", ThresholdPct: d("9"), IsActive: false},
	}}
	r := threshold.NewResolver(repo, d("2"))

	res, err := r.Resolve("ct-1", "mat-1")
	require.NoError(t, err)
	assert.Equal(t, threshold.SourceSystem, res.Source)
}
