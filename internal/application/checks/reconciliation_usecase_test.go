package checks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ObraStock-api/internal/application/checks"
	appinv "github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/testutil/memrepo"
)

func submitRecon(t *testing.T, uc *checks.ReconciliationUseCase, count string) (*entity.InventoryCheck, []entity.InventoryCheckLine) {
	t.Helper()
	check, lines, err := uc.Submit(context.Background(), checks.SubmitInput{
		ContractorID: "ct-1",
		PeriodType:   checks.PeriodWeekly,
		CheckDate:    day("2026-08-20"),
		ReportedBy:   "ct-user",
		Lines: []checks.ReconciliationLineInput{
			{MaterialID: "mat-steel", PhysicalCount: d(count)},
		},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	return check, lines
}

// TestRecon_VarianzaVisibleAlEnviar el envío analiza de inmediato: la línea
// regresa con esperado y varianza, sin fase ciega.
func TestRecon_VarianzaVisibleAlEnviar(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)

	check, lines, err := newReconUseCase(s).Submit(context.Background(), checks.SubmitInput{
		ContractorID: "ct-1",
		PeriodType:   checks.PeriodWeekly,
		CheckDate:    day("2026-08-20"),
		ReportedBy:   "ct-user",
		Lines:        []checks.ReconciliationLineInput{{MaterialID: "mat-steel", PhysicalCount: d("100")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "REC-2026-0001", check.CheckNumber)
	assert.Equal(t, entity.CheckStatusSubmitted, check.Status)
	line := lines[0]
	require.NotNil(t, line.ExpectedQuantity)
	assert.True(t, line.ExpectedQuantity.Equal(d("120")))
	assert.True(t, line.Variance.Equal(d("-20")))
	require.NotNil(t, line.IsAnomaly)
	assert.True(t, *line.IsAnomaly)

	anomalies, _ := (&memrepo.AnomalyRepo{S: s}).ListByCheck(check.ID)
	require.Len(t, anomalies, 1)
	assert.Equal(t, entity.AnomalyTypeReconShortage, anomalies[0].AnomalyType)
}

// TestRecon_ExcesoTambienEsAnomalia a diferencia de la auditoría, el exceso
// fuera de umbral sí levanta anomalía.
func TestRecon_ExcesoTambienEsAnomalia(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)

	check, lines := submitRecon(t, newReconUseCase(s), "140")

	require.NotNil(t, lines[0].IsAnomaly)
	assert.True(t, *lines[0].IsAnomaly)
	anomalies, _ := (&memrepo.AnomalyRepo{S: s}).ListByCheck(check.ID)
	require.Len(t, anomalies, 1)
	assert.Equal(t, entity.AnomalyTypeReconExcess, anomalies[0].AnomalyType)
}

// TestRecon_AceptarCorrigeYResuelve aceptar con ajuste corrige el saldo,
// resuelve la anomalía, estampa resolved_at y ancla la ventana del siguiente
// esperado.
func TestRecon_AceptarCorrigeYResuelve(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newReconUseCase(s)
	check, _ := submitRecon(t, uc, "100")

	require.NoError(t, uc.Review(context.Background(), check.ID, checks.ReviewInput{
		Accept: true, AdjustInventory: true, ReviewedBy: "manager-1",
	}))

	header, _ := (&memrepo.CheckRepo{S: s}).GetByID(check.ID)
	assert.Equal(t, entity.CheckStatusAccepted, header.Status)
	assert.NotNil(t, header.ResolvedAt)

	balance, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, balance.Quantity.Equal(d("100")))
	require.Len(t, s.Adjustments, 1)
	assert.Equal(t, entity.AdjustmentTypeReconCorrection, s.Adjustments[0].AdjustmentType)

	anomalies, _ := (&memrepo.AnomalyRepo{S: s}).ListByCheck(check.ID)
	require.Len(t, anomalies, 1)
	assert.True(t, anomalies[0].Resolved)
	assert.Equal(t, "manager-1", anomalies[0].ResolvedBy)
	require.NotNil(t, anomalies[0].ResolvedAt)

	// El conteo aceptado es la nueva apertura: esperado al día siguiente = 100.
	calc := appinv.NewExpectedCalculator(
		&memrepo.IssuanceRepo{S: s}, &memrepo.ConsumptionRepo{S: s},
		&memrepo.RejectionRepo{S: s}, &memrepo.CheckRepo{S: s}, epoch,
	)
	res, err := calc.Expected("ct-1", "mat-steel", day("2026-08-25"))
	require.NoError(t, err)
	assert.True(t, res.HasBaseline)
	assert.True(t, res.Expected.Equal(d("100")))
}

// TestRecon_AceptarSinAjustarSaldo aceptar sin ajuste de inventario no toca el
// saldo ni crea ajustes, pero igual resuelve la anomalía y fija el conteo como
// nueva apertura.
func TestRecon_AceptarSinAjustarSaldo(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newReconUseCase(s)
	check, _ := submitRecon(t, uc, "100")

	require.NoError(t, uc.Review(context.Background(), check.ID, checks.ReviewInput{
		Accept: true, AdjustInventory: false, ReviewedBy: "manager-1",
	}))

	header, _ := (&memrepo.CheckRepo{S: s}).GetByID(check.ID)
	assert.Equal(t, entity.CheckStatusAccepted, header.Status)
	assert.NotNil(t, header.ResolvedAt)

	balance, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, balance.Quantity.Equal(d("120")), "sin ajuste el saldo no cambia")
	assert.Empty(t, s.Adjustments)

	anomalies, _ := (&memrepo.AnomalyRepo{S: s}).ListByCheck(check.ID)
	require.Len(t, anomalies, 1)
	assert.True(t, anomalies[0].Resolved, "aceptar resuelve aunque no se ajuste el saldo")

	calc := appinv.NewExpectedCalculator(
		&memrepo.IssuanceRepo{S: s}, &memrepo.ConsumptionRepo{S: s},
		&memrepo.RejectionRepo{S: s}, &memrepo.CheckRepo{S: s}, epoch,
	)
	res, err := calc.Expected("ct-1", "mat-steel", day("2026-08-25"))
	require.NoError(t, err)
	assert.True(t, res.HasBaseline)
	assert.True(t, res.Expected.Equal(d("100")), "la apertura es lo contado, no el saldo")
}

// TestRecon_DisputaNoTocaNada disputar es terminal: sin ajustes, sin
// resolved_at; la disputa queda anotada en la anomalía, que sigue abierta.
func TestRecon_DisputaNoTocaNada(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newReconUseCase(s)
	check, _ := submitRecon(t, uc, "100")

	require.NoError(t, uc.Review(context.Background(), check.ID, checks.ReviewInput{
		Accept: false, ReviewedBy: "manager-1", Notes: "conteo no confiable",
	}))

	header, _ := (&memrepo.CheckRepo{S: s}).GetByID(check.ID)
	assert.Equal(t, entity.CheckStatusDisputed, header.Status)
	assert.Nil(t, header.ResolvedAt)
	balance, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, balance.Quantity.Equal(d("120")))
	assert.Empty(t, s.Adjustments)

	anomalies, _ := (&memrepo.AnomalyRepo{S: s}).ListByCheck(check.ID)
	require.Len(t, anomalies, 1)
	assert.False(t, anomalies[0].Resolved, "disputar no resuelve la anomalía")
	assert.Contains(t, anomalies[0].Notes, "auto-reporte disputado: conteo no confiable")

	// Terminal: no admite segunda revisión.
	err := uc.Review(context.Background(), check.ID, checks.ReviewInput{Accept: true, ReviewedBy: "manager-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// TestRecon_DentroDeUmbralSinAnomalia varianza pequeña no marca nada.
func TestRecon_DentroDeUmbralSinAnomalia(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)

	check, lines := submitRecon(t, newReconUseCase(s), "119")

	require.NotNil(t, lines[0].IsAnomaly)
	assert.False(t, *lines[0].IsAnomaly, "-0.83%% está dentro del umbral de 2%%")
	anomalies, _ := (&memrepo.AnomalyRepo{S: s}).ListByCheck(check.ID)
	assert.Empty(t, anomalies)
}

// TestRecon_EntradasInvalidas periodo desconocido, material repetido y conteo
// negativo se rechazan.
func TestRecon_EntradasInvalidas(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newReconUseCase(s)
	ctx := context.Background()

	_, _, err := uc.Submit(ctx, checks.SubmitInput{
		ContractorID: "ct-1", PeriodType: "quarterly", ReportedBy: "x",
		Lines: []checks.ReconciliationLineInput{{MaterialID: "mat-steel", PhysicalCount: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.Submit(ctx, checks.SubmitInput{
		ContractorID: "ct-1", PeriodType: checks.PeriodAdHoc, ReportedBy: "x",
		Lines: []checks.ReconciliationLineInput{
			{MaterialID: "mat-steel", PhysicalCount: d("1")},
			{MaterialID: "mat-steel", PhysicalCount: d("2")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, _, err = uc.Submit(ctx, checks.SubmitInput{
		ContractorID: "ct-1", PeriodType: checks.PeriodAdHoc, ReportedBy: "x",
		Lines: []checks.ReconciliationLineInput{{MaterialID: "mat-steel", PhysicalCount: d("-1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
