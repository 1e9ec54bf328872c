package conversion_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ObraStock-api/internal/application/conversion"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
)

// fakeConversionRepo repo en memoria indexado por (material, from, to).
type fakeConversionRepo struct {
	rows map[[3]string]*entity.UnitConversion
}

func newFakeConversionRepo() *fakeConversionRepo {
	return &fakeConversionRepo{rows: make(map[[3]string]*entity.UnitConversion)}
}

func (f *fakeConversionRepo) Create(c *entity.UnitConversion) error {
	f.rows[[3]string{c.MaterialID, c.FromUnit, c.ToUnit}] = c
	return nil
}

func (f *fakeConversionRepo) Find(materialID, fromUnit, toUnit string) (*entity.UnitConversion, error) {
	if c, ok := f.rows[[3]string{materialID, fromUnit, toUnit}]; ok && c.IsActive {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeConversionRepo) ListByMaterial(materialID string) ([]entity.UnitConversion, error) {
	var out []entity.UnitConversion
	for _, c := range f.rows {
		if c.MaterialID == materialID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func setupService() *conversion.Service {
	repo := newFakeConversionRepo()
	// varilla de acero: 1 bundle = 50 kg
	_ = repo.Create(&entity.UnitConversion{
		ID: "uc-1", MaterialID: "mat-steel", FromUnit: "bundle", ToUnit: "kg",
		Factor: d("50"), IsActive: true,
	})
	return conversion.NewService(repo)
}

// TestResolve_MismaUnidad misma unidad (case-insensitive) -> factor 1 sin consultar tabla.
func TestResolve_MismaUnidad(t *testing.T) {
	svc := setupService()

	factor, err := svc.Resolve("mat-steel", "KG", "kg")
	require.NoError(t, err)
	assert.True(t, factor.Equal(d("1")))
}

func TestResolve_FactorDirecto(t *testing.T) {
	svc := setupService()

	factor, err := svc.Resolve("mat-steel", "bundle", "kg")
	require.NoError(t, err)
	assert.True(t, factor.Equal(d("50")))
}

// TestResolve_FactorInverso la fila bundle->kg sirve también para kg->bundle.
func TestResolve_FactorInverso(t *testing.T) {
	svc := setupService()

	factor, err := svc.Resolve("mat-steel", "kg", "bundle")
	require.NoError(t, err)
	assert.True(t, factor.Equal(d("0.02")), "1/50 = 0.02, fue %s", factor)
}

// TestConvert_IdaYVuelta convertir y desconvertir devuelve la cantidad original.
func TestConvert_IdaYVuelta(t *testing.T) {
	svc := setupService()

	kg, err := svc.Convert("mat-steel", d("10"), "bundle", "kg")
	require.NoError(t, err)
	assert.True(t, kg.Equal(d("500")))

	back, err := svc.Convert("mat-steel", kg, "kg", "bundle")
	require.NoError(t, err)
	assert.True(t, back.Equal(d("10")))
}

// TestConvert_CantidadNegativa el contrato es sobre cantidades no negativas.
func TestConvert_CantidadNegativa(t *testing.T) {
	svc := setupService()

	_, err := svc.Convert("mat-steel", d("-10"), "bundle", "kg")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zero, err := svc.Convert("mat-steel", d("0"), "bundle", "kg")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

// TestResolve_SinConversionDefinida par sin fila en ninguna dirección -> error, nunca se adivina.
func TestResolve_SinConversionDefinida(t *testing.T) {
	svc := setupService()

	_, err := svc.Resolve("mat-steel", "m3", "kg")
	assert.ErrorIs(t, err, domain.ErrNoConversionDefined)
}

// TestResolve_OtroMaterialNoAplica el factor es por material, no global.
func TestResolve_OtroMaterialNoAplica(t *testing.T) {
	svc := setupService()

	_, err := svc.Resolve("mat-cement", "bundle", "kg")
	assert.ErrorIs(t, err, domain.ErrNoConversionDefined)
}
