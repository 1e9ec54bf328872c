package inventory_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/application/conversion"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/testutil/memrepo"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedBase bodega central, contratista activo y varilla de acero con
// conversión bundle->kg (1 bundle = 50 kg).
func seedBase(s *memrepo.Store) {
	s.Warehouses["wh-central"] = &entity.Warehouse{
		ID: "wh-central", Code: "BOD-01", Name: "Bodega Central",
		CanHoldMaterials: true, CanHoldFinishedGoods: true, IsActive: true,
	}
	s.Warehouses["wh-norte"] = &entity.Warehouse{
		ID: "wh-norte", Code: "BOD-02", Name: "Bodega Norte",
		CanHoldMaterials: true, IsActive: true,
	}
	s.Contractors["ct-1"] = &entity.Contractor{ID: "ct-1", Code: "CT-001", Name: "Construcciones Díaz", IsActive: true}
	s.Materials["mat-steel"] = &entity.Material{ID: "mat-steel", Code: "ACERO-12", Name: "Varilla de acero 12mm", Unit: "kg", IsActive: true}
	s.Materials["mat-cement"] = &entity.Material{ID: "mat-cement", Code: "CEM-50", Name: "Cemento gris 50kg", Unit: "bag", IsActive: true}
	s.Conversions = append(s.Conversions, &entity.UnitConversion{
		ID: "uc-1", MaterialID: "mat-steel", FromUnit: "bundle", ToUnit: "kg",
		Factor: d("50"), IsActive: true,
	})
}

func newConversionService(s *memrepo.Store) *conversion.Service {
	return conversion.NewService(&memrepo.ConversionRepo{S: s})
}
