package conversion

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// Service resuelve factores de conversión de unidades por material.
//
// Orden de resolución: misma unidad -> 1; fila directa (from, to); inversa
// 1/factor de la fila (to, from). Si nada aplica, domain.ErrNoConversionDefined:
// jamás se adivina un factor.
type Service struct {
	conversionRepo repository.UnitConversionRepository
}

// NewService construye el servicio de conversión.
func NewService(conversionRepo repository.UnitConversionRepository) *Service {
	return &Service{conversionRepo: conversionRepo}
}

// Normalize unidad normalizada para comparación y almacenamiento.
func Normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// Resolve devuelve el factor tal que qty_from * factor = qty_to.
func (s *Service) Resolve(materialID, fromUnit, toUnit string) (decimal.Decimal, error) {
	from := Normalize(fromUnit)
	to := Normalize(toUnit)
	if from == "" || to == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	direct, err := s.conversionRepo.Find(materialID, from, to)
	if err == nil {
		return direct.Factor, nil
	}
	if err != domain.ErrNotFound {
		return decimal.Zero, err
	}

	inverse, err := s.conversionRepo.Find(materialID, to, from)
	if err == domain.ErrNotFound {
		return decimal.Zero, domain.ErrNoConversionDefined
	}
	if err != nil {
		return decimal.Zero, err
	}
	// Factor > 0 es invariante de escritura; el guard evita una división por
	// cero si una fila corrupta llegara a la tabla.
	if !inverse.Factor.IsPositive() {
		return decimal.Zero, domain.ErrNoConversionDefined
	}
	return decimal.NewFromInt(1).Div(inverse.Factor), nil
}

// Convert convierte una cantidad entre unidades del material. La cantidad debe
// ser no negativa: los movimientos del ledger nunca convierten montos negativos.
func (s *Service) Convert(materialID string, qty decimal.Decimal, fromUnit, toUnit string) (decimal.Decimal, error) {
	if qty.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	factor, err := s.Resolve(materialID, fromUnit, toUnit)
	if err != nil {
		return decimal.Zero, err
	}
	return qty.Mul(factor), nil
}
