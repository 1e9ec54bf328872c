package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// ExpectedResult desglose del inventario esperado de un par contratista+material.
// Los componentes se conservan para que reportes y análisis muestren de dónde
// salió el número, no solo el total.
type ExpectedResult struct {
	ContractorID string
	MaterialID   string
	Expected     decimal.Decimal
	Opening      decimal.Decimal
	Issued       decimal.Decimal
	Consumed     decimal.Decimal
	Rejected     decimal.Decimal
	WindowStart  time.Time // primer día incluido en las sumas
	WindowEnd    time.Time // último día incluido
	HasBaseline  bool      // false = nunca hubo conteo resuelto, apertura 0 desde la época
}

// ExpectedCalculator calcula el inventario esperado de un contratista:
//
//	esperado = apertura + entregado - consumido - devuelto_recibido
//
// La apertura es el conteo físico del último conteo resuelto estrictamente
// anterior a asOf; la ventana de sumas va del día siguiente a ese conteo hasta
// asOf inclusive. Sin conteo resuelto, apertura 0 y ventana desde la época
// configurada.
//
// Los repos pueden venir atados a una transacción (análisis bajo lock) o al
// pool (vista previa); el cálculo es el mismo.
type ExpectedCalculator struct {
	issuanceRepo    repository.IssuanceRepository
	consumptionRepo repository.ConsumptionRepository
	rejectionRepo   repository.RejectionRepository
	checkRepo       repository.CheckRepository
	epoch           time.Time
}

// NewExpectedCalculator construye el calculador. epoch es el piso histórico de
// integración (por defecto 2000-01-01, de configuración).
func NewExpectedCalculator(
	issuanceRepo repository.IssuanceRepository,
	consumptionRepo repository.ConsumptionRepository,
	rejectionRepo repository.RejectionRepository,
	checkRepo repository.CheckRepository,
	epoch time.Time,
) *ExpectedCalculator {
	return &ExpectedCalculator{
		issuanceRepo:    issuanceRepo,
		consumptionRepo: consumptionRepo,
		rejectionRepo:   rejectionRepo,
		checkRepo:       checkRepo,
		epoch:           epoch,
	}
}

// Expected calcula el inventario esperado del par al cierre del día asOf.
// Todas las cantidades quedan en la unidad canónica del material (las entregas
// se suman por quantity_in_base_unit).
func (c *ExpectedCalculator) Expected(contractorID, materialID string, asOf time.Time) (*ExpectedResult, error) {
	if contractorID == "" || materialID == "" {
		return nil, domain.ErrInvalidInput
	}
	asOf = truncateDay(asOf)

	res := &ExpectedResult{
		ContractorID: contractorID,
		MaterialID:   materialID,
		Opening:      decimal.Zero,
		WindowStart:  truncateDay(c.epoch),
		WindowEnd:    asOf,
	}

	line, check, err := c.checkRepo.LastResolvedCount(contractorID, materialID, asOf)
	switch err {
	case nil:
		if line.PhysicalCount == nil {
			// Un conteo resuelto siempre tiene conteo físico; si no, los datos
			// están corruptos y es mejor fallar que inventar un esperado.
			return nil, domain.ErrCalculation
		}
		res.Opening = *line.PhysicalCount
		res.HasBaseline = true
		// Los movimientos del día del conteo quedaron reflejados en el conteo
		// físico; la ventana arranca al día siguiente.
		res.WindowStart = truncateDay(check.CheckDate).AddDate(0, 0, 1)
	case domain.ErrNotFound:
		// sin baseline: época y apertura cero
	default:
		return nil, err
	}

	// Las sumas son [from, to): el fin exclusivo es el día después de asOf
	// para incluir los movimientos del propio día asOf.
	from := res.WindowStart
	to := asOf.AddDate(0, 0, 1)

	if res.Issued, err = c.issuanceRepo.SumBaseQuantityInWindow(contractorID, materialID, from, to); err != nil {
		return nil, err
	}
	if res.Consumed, err = c.consumptionRepo.SumQuantityInWindow(contractorID, materialID, from, to); err != nil {
		return nil, err
	}
	if res.Rejected, err = c.rejectionRepo.SumReceivedInWindow(contractorID, materialID, from, to); err != nil {
		return nil, err
	}

	res.Expected = res.Opening.Add(res.Issued).Sub(res.Consumed).Sub(res.Rejected)
	return res, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
