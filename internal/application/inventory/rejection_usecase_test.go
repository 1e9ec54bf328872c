package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/testutil/memrepo"
)

func newRejectionUseCase(s *memrepo.Store) *appinv.RejectionUseCase {
	return appinv.NewRejectionUseCase(
		&memrepo.Runner{S: s},
		newConversionService(s),
		&memrepo.MaterialRepo{S: s},
		&memrepo.WarehouseRepo{S: s},
		&memrepo.ContractorRepo{S: s},
		&memrepo.RejectionRepo{S: s},
	)
}

func reportRejection(t *testing.T, uc *appinv.RejectionUseCase) *entity.MaterialRejection {
	t.Helper()
	rejection, err := uc.Report(context.Background(), appinv.ReportInput{
		ContractorID:    "ct-1",
		MaterialID:      "mat-steel",
		Quantity:        d("2"),
		UnitOfMeasure:   "bundle",
		RejectionReason: "varillas dobladas",
		ReportedBy:      "ct-user",
	})
	require.NoError(t, err)
	return rejection
}

// TestRejection_ReporteNoTocaSaldos el reporte crea el documento en REPORTED
// sin mutar inventario.
func TestRejection_ReporteNoTocaSaldos(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedContractorStock("ct-1", "mat-steel", "500")

	rejection := reportRejection(t, newRejectionUseCase(s))

	assert.Equal(t, entity.RejectionStatusReported, rejection.Status)
	assert.Equal(t, "REJ-", rejection.RejectionNumber[:4])
	balance, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, balance.Quantity.Equal(d("500")), "reportar no descuenta nada")
}

// TestRejection_CicloCompleto reporte -> aprobación -> recepción: solo la
// recepción mueve saldos (contratista -100 kg, bodega +100 kg).
func TestRejection_CicloCompleto(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "1000", "kg")
	s.SeedContractorStock("ct-1", "mat-steel", "500")

	uc := newRejectionUseCase(s)
	rejection := reportRejection(t, uc)

	approved, err := uc.Approve(context.Background(), rejection.ID, "wh-central", "manager-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RejectionStatusApproved, approved.Status)
	assert.Equal(t, "wh-central", approved.ReturnWarehouseID)
	balance, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, balance.Quantity.Equal(d("500")), "aprobar tampoco descuenta")

	received, err := uc.Receive(context.Background(), rejection.ID, "wh-user")
	require.NoError(t, err)
	assert.Equal(t, entity.RejectionStatusReceived, received.Status)
	assert.NotNil(t, received.ReceivedAt)
	assert.NotEmpty(t, received.WarehouseGRNNumber)

	balance, _ = (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, balance.Quantity.Equal(d("400")), "2 bundles = 100 kg menos")
	stock, _ := (&memrepo.WarehouseStockRepo{S: s}).Get("wh-central", "mat-steel")
	assert.True(t, stock.CurrentQuantity.Equal(d("1100")))
}

// TestRejection_RecibirSinAprobar REPORTED no puede recibirse directo.
func TestRejection_RecibirSinAprobar(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	uc := newRejectionUseCase(s)
	rejection := reportRejection(t, uc)

	_, err := uc.Receive(context.Background(), rejection.ID, "wh-user")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// TestRejection_Disputa REPORTED -> DISPUTED es terminal y no toca saldos.
func TestRejection_Disputa(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedContractorStock("ct-1", "mat-steel", "500")
	uc := newRejectionUseCase(s)
	rejection := reportRejection(t, uc)

	disputed, err := uc.Dispute(context.Background(), rejection.ID, "manager-1", "el material salió conforme")
	require.NoError(t, err)
	assert.Equal(t, entity.RejectionStatusDisputed, disputed.Status)

	_, err = uc.Approve(context.Background(), rejection.ID, "wh-central", "manager-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	balance, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, balance.Quantity.Equal(d("500")))
}

// TestRejection_RecepcionDobleRechazada una devolución ya recibida no se
// vuelve a recibir.
func TestRejection_RecepcionDobleRechazada(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "1000", "kg")
	s.SeedContractorStock("ct-1", "mat-steel", "500")
	uc := newRejectionUseCase(s)
	rejection := reportRejection(t, uc)

	_, err := uc.Approve(context.Background(), rejection.ID, "wh-central", "manager-1")
	require.NoError(t, err)
	_, err = uc.Receive(context.Background(), rejection.ID, "wh-user")
	require.NoError(t, err)

	_, err = uc.Receive(context.Background(), rejection.ID, "wh-user")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	balance, _ := (&memrepo.ContractorStockRepo{S: s}).Get("ct-1", "mat-steel")
	assert.True(t, balance.Quantity.Equal(d("400")), "el descuento ocurre una sola vez")
}

// TestRejection_RecepcionFijaCantidadCanonica la recepción congela la cantidad
// en unidad canónica: el esperado resta exactamente lo que el ledger descontó,
// aunque el rechazo se haya reportado en otra unidad.
func TestRejection_RecepcionFijaCantidadCanonica(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)
	s.SeedWarehouseStock("wh-central", "mat-steel", "1000", "kg")
	s.SeedContractorStock("ct-1", "mat-steel", "500")
	s.Issuances = append(s.Issuances, &entity.MaterialIssuance{
		ID: "iss-1", ContractorID: "ct-1", MaterialID: "mat-steel",
		QuantityInBaseUnit: d("500"), IssuedDate: day("2026-08-01"),
	})

	uc := newRejectionUseCase(s)
	rejection := reportRejection(t, uc) // 2 bundles
	_, err := uc.Approve(context.Background(), rejection.ID, "wh-central", "manager-1")
	require.NoError(t, err)
	received, err := uc.Receive(context.Background(), rejection.ID, "wh-user")
	require.NoError(t, err)

	assert.True(t, received.QuantityInBaseUnit.Equal(d("100")), "2 bundles = 100 kg")
	assert.Equal(t, "kg", received.BaseUnit)

	res, err := newCalculator(s).Expected("ct-1", "mat-steel", time.Now())
	require.NoError(t, err)
	assert.True(t, res.Rejected.Equal(d("100")), "el esperado resta en canónica, no en bundles")
	assert.True(t, res.Expected.Equal(d("400")))
}

// TestRejection_SinConversionAlReportar se rechaza desde el reporte, no en la recepción.
func TestRejection_SinConversionAlReportar(t *testing.T) {
	s := memrepo.NewStore()
	seedBase(s)

	_, err := newRejectionUseCase(s).Report(context.Background(), appinv.ReportInput{
		ContractorID: "ct-1", MaterialID: "mat-steel",
		Quantity: d("2"), UnitOfMeasure: "m3", RejectionReason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNoConversionDefined)
}
