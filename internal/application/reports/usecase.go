package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// VarianceRow fila del reporte de varianzas: una línea analizada de conteo.
type VarianceRow struct {
	CheckNumber  string          `json:"check_number"`
	CheckKind    string          `json:"check_kind"`
	CheckDate    time.Time       `json:"check_date"`
	Contractor   string          `json:"contractor"`
	Material     string          `json:"material"`
	Unit         string          `json:"unit"`
	Expected     decimal.Decimal `json:"expected"`
	Counted      decimal.Decimal `json:"counted"`
	Variance     decimal.Decimal `json:"variance"`
	VariancePct  decimal.Decimal `json:"variance_pct"`
	ThresholdPct decimal.Decimal `json:"threshold_pct"`
	IsAnomaly    bool            `json:"is_anomaly"`
}

// AnomalyRow fila del reporte de anomalías.
type AnomalyRow struct {
	Contractor  string          `json:"contractor"`
	Material    string          `json:"material"`
	AnomalyType string          `json:"anomaly_type"`
	Expected    decimal.Decimal `json:"expected"`
	Actual      decimal.Decimal `json:"actual"`
	Variance    decimal.Decimal `json:"variance"`
	VariancePct decimal.Decimal `json:"variance_pct"`
	Resolved    bool            `json:"resolved"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReorderRow material de bodega bajo su punto de reorden.
type ReorderRow struct {
	WarehouseID     string          `json:"warehouse_id"`
	MaterialID      string          `json:"material_id"`
	Material        string          `json:"material"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
	Unit            string          `json:"unit"`
}

// ReportsUseCase arma las filas de los reportes de lectura. No muta nada.
type ReportsUseCase struct {
	checkRepo      repository.CheckRepository
	anomalyRepo    repository.AnomalyRepository
	stockRepo      repository.WarehouseInventoryRepository
	materialRepo   repository.MaterialRepository
	contractorRepo repository.ContractorRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(
	checkRepo repository.CheckRepository,
	anomalyRepo repository.AnomalyRepository,
	stockRepo repository.WarehouseInventoryRepository,
	materialRepo repository.MaterialRepository,
	contractorRepo repository.ContractorRepository,
) *ReportsUseCase {
	return &ReportsUseCase{
		checkRepo:      checkRepo,
		anomalyRepo:    anomalyRepo,
		stockRepo:      stockRepo,
		materialRepo:   materialRepo,
		contractorRepo: contractorRepo,
	}
}

// VarianceReport filas de todas las líneas ya analizadas, opcionalmente
// filtradas por clase de conteo (AUDIT | SELF_REPORT | vacío = ambas).
func (uc *ReportsUseCase) VarianceReport(kind string) ([]VarianceRow, error) {
	checks, err := uc.checkRepo.List(kind, "")
	if err != nil {
		return nil, err
	}
	var rows []VarianceRow
	for _, check := range checks {
		lines, err := uc.checkRepo.ListLines(check.ID)
		if err != nil {
			return nil, err
		}
		contractorName := check.ContractorID
		if contractor, err := uc.contractorRepo.GetByID(check.ContractorID); err == nil {
			contractorName = contractor.Name
		}
		for _, line := range lines {
			// Solo líneas analizadas: las demás no tienen nada que reportar.
			if line.ExpectedQuantity == nil || line.Variance == nil || line.PhysicalCount == nil {
				continue
			}
			materialName := line.MaterialID
			if material, err := uc.materialRepo.GetByID(line.MaterialID); err == nil {
				materialName = material.Name
			}
			row := VarianceRow{
				CheckNumber: check.CheckNumber,
				CheckKind:   check.Kind,
				CheckDate:   check.CheckDate,
				Contractor:  contractorName,
				Material:    materialName,
				Unit:        line.UnitOfMeasure,
				Expected:    *line.ExpectedQuantity,
				Counted:     *line.PhysicalCount,
				Variance:    *line.Variance,
				VariancePct: *line.VariancePct,
			}
			if line.ThresholdUsed != nil {
				row.ThresholdPct = *line.ThresholdUsed
			}
			if line.IsAnomaly != nil {
				row.IsAnomaly = *line.IsAnomaly
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// AnomalyReport anomalías por estado: "open", "resolved" o vacío = todas.
func (uc *ReportsUseCase) AnomalyReport(status string) ([]AnomalyRow, error) {
	anomalies, err := uc.anomalyRepo.List(status)
	if err != nil {
		return nil, err
	}
	rows := make([]AnomalyRow, 0, len(anomalies))
	for _, a := range anomalies {
		contractorName := a.ContractorID
		if contractor, err := uc.contractorRepo.GetByID(a.ContractorID); err == nil {
			contractorName = contractor.Name
		}
		materialName := a.MaterialID
		if material, err := uc.materialRepo.GetByID(a.MaterialID); err == nil {
			materialName = material.Name
		}
		rows = append(rows, AnomalyRow{
			Contractor:  contractorName,
			Material:    materialName,
			AnomalyType: a.AnomalyType,
			Expected:    a.ExpectedQty,
			Actual:      a.ActualQty,
			Variance:    a.Variance,
			VariancePct: a.VariancePct,
			Resolved:    a.Resolved,
			CreatedAt:   a.CreatedAt,
		})
	}
	return rows, nil
}

// ReorderReport materiales bajo punto de reorden en todas las bodegas.
func (uc *ReportsUseCase) ReorderReport() ([]ReorderRow, error) {
	stocks, err := uc.stockRepo.ListBelowReorderPoint()
	if err != nil {
		return nil, err
	}
	rows := make([]ReorderRow, 0, len(stocks))
	for _, s := range stocks {
		materialName := s.MaterialID
		if material, err := uc.materialRepo.GetByID(s.MaterialID); err == nil {
			materialName = material.Name
		}
		rows = append(rows, ReorderRow{
			WarehouseID:     s.WarehouseID,
			MaterialID:      s.MaterialID,
			Material:        materialName,
			CurrentQuantity: s.CurrentQuantity,
			ReorderPoint:    s.ReorderPoint,
			ReorderQuantity: s.ReorderQuantity,
			Unit:            s.UnitOfMeasure,
		})
	}
	return rows, nil
}
