package checks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ObraStock-api/internal/application/checks"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/testutil/memrepo"
)

func startAudit(t *testing.T, uc *checks.AuditUseCase) *entity.InventoryCheck {
	t.Helper()
	check, lines, err := uc.Start(context.Background(), checks.StartAuditInput{
		ContractorID: "ct-1",
		AuditType:    entity.AuditTypeSurprise,
		CheckDate:    day("2026-08-20"),
		Auditor:      "auditor-1",
		MaterialIDs:  []string{"mat-steel"},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	return check
}

// TestAudit_FlujoCompleto contar 100 contra 120 esperados (-16.67%, umbral 2%):
// anomalía de faltante, corrección del saldo al aceptar y cierre.
func TestAudit_FlujoCompleto(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newAuditUseCase(s)
	ctx := context.Background()

	check := startAudit(t, uc)
	assert.Equal(t, "AUD-2026-0001", check.CheckNumber)
	assert.Equal(t, entity.CheckStatusInProgress, check.Status)

	require.NoError(t, uc.EnterCount(ctx, check.ID, "mat-steel", d("100"), "faltan varillas"))
	require.NoError(t, uc.Submit(ctx, check.ID))
	require.NoError(t, uc.Analyze(ctx, check.ID))

	_, lines, err := uc.VisibleLines(check.ID)
	require.NoError(t, err)
	line := lines[0]
	require.NotNil(t, line.ExpectedQuantity)
	assert.True(t, line.ExpectedQuantity.Equal(d("120")))
	assert.True(t, line.Variance.Equal(d("-20")))
	assert.True(t, line.VariancePct.Round(2).Equal(d("-16.67")))
	assert.True(t, line.ThresholdUsed.Equal(d("2")))
	require.NotNil(t, line.IsAnomaly)
	assert.True(t, *line.IsAnomaly)

	anomalies, _ := (&memrepo.AnomalyRepo{S: s}).ListByCheck(check.ID)
	require.Len(t, anomalies, 1)
	assert.Equal(t, entity.AnomalyTypeAuditShortage, anomalies[0].AnomalyType)
	assert.True(t, anomalies[0].Variance.Equal(d("-20")))

	require.NoError(t, uc.AcceptCounts(ctx, check.ID, "manager-1"))
	balance, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, balance.Quantity.Equal(d("100")), "el saldo se corrige al conteo físico")
	require.Len(t, s.Adjustments, 1)
	assert.Equal(t, entity.AdjustmentTypeAuditCorrection, s.Adjustments[0].AdjustmentType)
	assert.True(t, s.Adjustments[0].AdjustmentQty.Equal(d("-20")))

	// Aceptar también cierra la anomalía enlazada a la línea.
	anomalies, _ = (&memrepo.AnomalyRepo{S: s}).ListByCheck(check.ID)
	require.Len(t, anomalies, 1)
	assert.True(t, anomalies[0].Resolved, "la anomalía del faltante queda resuelta")
	assert.Equal(t, "manager-1", anomalies[0].ResolvedBy)
	require.NotNil(t, anomalies[0].ResolvedAt)
	assert.Contains(t, anomalies[0].ResolutionNotes, check.CheckNumber)

	header, _ := (&memrepo.CheckRepo{S: s}).GetByID(check.ID)
	assert.NotNil(t, header.ResolvedAt, "aceptar conteos resuelve el conteo")

	require.NoError(t, uc.Close(ctx, check.ID, "manager-1"))
	header, _ = (&memrepo.CheckRepo{S: s}).GetByID(check.ID)
	assert.Equal(t, entity.CheckStatusClosed, header.Status)
}

// TestAudit_CiegaHastaAnalisis antes del análisis la vista del auditor no
// expone esperado ni varianza, en ningún estado previo.
func TestAudit_CiegaHastaAnalisis(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newAuditUseCase(s)
	ctx := context.Background()
	check := startAudit(t, uc)

	_, lines, err := uc.VisibleLines(check.ID)
	require.NoError(t, err)
	assert.Nil(t, lines[0].ExpectedQuantity)
	assert.Nil(t, lines[0].Variance)

	require.NoError(t, uc.EnterCount(ctx, check.ID, "mat-steel", d("100"), ""))
	require.NoError(t, uc.Submit(ctx, check.ID))

	_, lines, err = uc.VisibleLines(check.ID)
	require.NoError(t, err)
	assert.Nil(t, lines[0].ExpectedQuantity, "enviado pero sin analizar sigue ciego")
	assert.Nil(t, lines[0].IsAnomaly)
	assert.Empty(t, lines[0].AnomalyID)
}

// TestAudit_EnvioIncompleto no se envía con líneas sin contar.
func TestAudit_EnvioIncompleto(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.Materials["mat-cement"] = &entity.Material{ID: "mat-cement", Name: "Cemento", Unit: "bag", IsActive: true}
	uc := newAuditUseCase(s)
	ctx := context.Background()

	check, _, err := uc.Start(ctx, checks.StartAuditInput{
		ContractorID: "ct-1", AuditType: entity.AuditTypeScheduled,
		Auditor: "auditor-1", MaterialIDs: []string{"mat-steel", "mat-cement"},
	})
	require.NoError(t, err)
	require.NoError(t, uc.EnterCount(ctx, check.ID, "mat-steel", d("100"), ""))

	assert.ErrorIs(t, uc.Submit(ctx, check.ID), domain.ErrIncompleteCheck)
}

// TestAudit_ConteoIdempotente recontar sobreescribe el valor anterior.
func TestAudit_ConteoIdempotente(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newAuditUseCase(s)
	ctx := context.Background()
	check := startAudit(t, uc)

	require.NoError(t, uc.EnterCount(ctx, check.ID, "mat-steel", d("90"), ""))
	require.NoError(t, uc.EnterCount(ctx, check.ID, "mat-steel", d("100"), "recontado"))

	_, lines, err := uc.VisibleLines(check.ID)
	require.NoError(t, err)
	require.NotNil(t, lines[0].PhysicalCount)
	assert.True(t, lines[0].PhysicalCount.Equal(d("100")))
}

// TestAudit_SinRetrocesos la máquina no permite contar tras enviar ni
// analizar dos veces.
func TestAudit_SinRetrocesos(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newAuditUseCase(s)
	ctx := context.Background()
	check := startAudit(t, uc)

	require.NoError(t, uc.EnterCount(ctx, check.ID, "mat-steel", d("100"), ""))
	require.NoError(t, uc.Submit(ctx, check.ID))

	assert.ErrorIs(t, uc.EnterCount(ctx, check.ID, "mat-steel", d("110"), ""), domain.ErrInvalidState)
	assert.ErrorIs(t, uc.Submit(ctx, check.ID), domain.ErrInvalidState)

	require.NoError(t, uc.Analyze(ctx, check.ID))
	assert.ErrorIs(t, uc.Analyze(ctx, check.ID), domain.ErrInvalidState)
}

// TestAudit_UnaAbiertaPorContratista no se abre una segunda auditoría mientras
// hay una sin cerrar.
func TestAudit_UnaAbiertaPorContratista(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newAuditUseCase(s)
	startAudit(t, uc)

	_, _, err := uc.Start(context.Background(), checks.StartAuditInput{
		ContractorID: "ct-1", AuditType: entity.AuditTypeSurprise,
		Auditor: "auditor-2", MaterialIDs: []string{"mat-steel"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// TestAudit_ExcesoNoEsAnomalia contar de más no levanta anomalía en auditoría.
func TestAudit_ExcesoNoEsAnomalia(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newAuditUseCase(s)
	ctx := context.Background()
	check := startAudit(t, uc)

	require.NoError(t, uc.EnterCount(ctx, check.ID, "mat-steel", d("140"), ""))
	require.NoError(t, uc.Submit(ctx, check.ID))
	require.NoError(t, uc.Analyze(ctx, check.ID))

	_, lines, _ := uc.VisibleLines(check.ID)
	require.NotNil(t, lines[0].IsAnomaly)
	assert.False(t, *lines[0].IsAnomaly, "+16.67%% no es anómalo bajo política de solo-faltantes")
	anomalies, _ := (&memrepo.AnomalyRepo{S: s}).ListByCheck(check.ID)
	assert.Empty(t, anomalies)
}

// TestAudit_CerrarSinAceptar cerrar sin aceptar conteos no resuelve: el saldo
// queda intacto y el siguiente esperado sigue anclado a la época.
func TestAudit_CerrarSinAceptar(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newAuditUseCase(s)
	ctx := context.Background()
	check := startAudit(t, uc)

	require.NoError(t, uc.EnterCount(ctx, check.ID, "mat-steel", d("100"), ""))
	require.NoError(t, uc.Submit(ctx, check.ID))
	require.NoError(t, uc.Analyze(ctx, check.ID))
	require.NoError(t, uc.Close(ctx, check.ID, "manager-1"))

	header, _ := (&memrepo.CheckRepo{S: s}).GetByID(check.ID)
	assert.Nil(t, header.ResolvedAt)
	balance, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, balance.Quantity.Equal(d("120")), "sin aceptar no hay corrección")

	assert.ErrorIs(t, uc.AcceptCounts(ctx, check.ID, "manager-1"), domain.ErrInvalidState,
		"cerrada ya no se aceptan conteos")
}
