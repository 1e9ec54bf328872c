package checks_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/application/checks"
	"github.com/jhoicas/ObraStock-api/internal/application/threshold"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/testutil/memrepo"
)

var epoch = day("2000-01-01")

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

// seedBase contratista con 120 kg de acero entregados el 2026-08-01: el
// esperado a cualquier fecha posterior es 120.
func seedBase(s *memrepo.Store) {
	s.Contractors["ct-1"] = &entity.Contractor{ID: "ct-1", Code: "CT-001", Name: "Construcciones Díaz", IsActive: true}
	s.Materials["mat-steel"] = &entity.Material{ID: "mat-steel", Code: "ACERO-12", Name: "Varilla de acero 12mm", Unit: "kg", IsActive: true}
	s.SeedContractorStock("ct-1", "mat-steel", "120")
	s.Issuances = append(s.Issuances, &entity.MaterialIssuance{
		ID: "iss-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityInBaseUnit: d("120"), IssuedDate: day("2026-08-01"),
	})
}

func newResolver(s *memrepo.Store) *threshold.Resolver {
	return threshold.NewResolver(&memrepo.ThresholdRepo{S: s}, d("2"))
}

func newAuditUseCase(s *memrepo.Store) *checks.AuditUseCase {
	return checks.NewAuditUseCase(
		&memrepo.Runner{S: s},
		newResolver(s),
		&memrepo.ContractorRepo{S: s},
		&memrepo.MaterialRepo{S: s},
		&memrepo.CheckRepo{S: s},
		epoch,
	)
}

func newReconUseCase(s *memrepo.Store) *checks.ReconciliationUseCase {
	return checks.NewReconciliationUseCase(
		&memrepo.Runner{S: s},
		newResolver(s),
		&memrepo.ContractorRepo{S: s},
		&memrepo.MaterialRepo{S: s},
		&memrepo.CheckRepo{S: s},
		epoch,
	)
}
