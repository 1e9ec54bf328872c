package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraStock-api/internal/application/conversion"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// RejectionUseCase ciclo de devolución de material rechazado en tres fases:
// reporte del contratista, aprobación (asigna bodega de retorno) y recepción
// física. Los saldos solo se tocan en la recepción; hasta entonces el material
// sigue siendo responsabilidad del contratista.
type RejectionUseCase struct {
	txRunner       TxRunner
	conversions    *conversion.Service
	materialRepo   repository.MaterialRepository
	warehouseRepo  repository.WarehouseRepository
	contractorRepo repository.ContractorRepository
	rejectionRepo  repository.RejectionRepository
}

// NewRejectionUseCase construye el caso de uso.
func NewRejectionUseCase(
	txRunner TxRunner,
	conversions *conversion.Service,
	materialRepo repository.MaterialRepository,
	warehouseRepo repository.WarehouseRepository,
	contractorRepo repository.ContractorRepository,
	rejectionRepo repository.RejectionRepository,
) *RejectionUseCase {
	return &RejectionUseCase{
		txRunner:       txRunner,
		conversions:    conversions,
		materialRepo:   materialRepo,
		warehouseRepo:  warehouseRepo,
		contractorRepo: contractorRepo,
		rejectionRepo:  rejectionRepo,
	}
}

// ReportInput reporte inicial de rechazo.
type ReportInput struct {
	ContractorID       string
	MaterialID         string
	OriginalIssuanceID string
	Quantity           decimal.Decimal
	UnitOfMeasure      string
	RejectionDate      time.Time
	RejectionReason    string
	ReportedBy         string
	Notes              string
}

// Report crea la devolución en REPORTED. No muta saldos.
func (uc *RejectionUseCase) Report(ctx context.Context, input ReportInput) (*entity.MaterialRejection, error) {
	if input.ContractorID == "" || input.MaterialID == "" || input.RejectionReason == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.GetByID(input.MaterialID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.contractorRepo.GetByID(input.ContractorID); err != nil {
		return nil, err
	}

	unit := conversion.Normalize(input.UnitOfMeasure)
	if unit == "" {
		unit = conversion.Normalize(material.Unit)
	}
	// Valida desde ya que exista conversión a la canónica: mejor rechazar el
	// reporte que descubrirlo en la recepción.
	if _, err := uc.conversions.Resolve(material.ID, unit, material.Unit); err != nil {
		return nil, err
	}

	rejectionDate := input.RejectionDate
	if rejectionDate.IsZero() {
		rejectionDate = time.Now()
	}

	rejection := &entity.MaterialRejection{
		ID:                 uuid.New().String(),
		ContractorID:       input.ContractorID,
		MaterialID:         input.MaterialID,
		OriginalIssuanceID: input.OriginalIssuanceID,
		QuantityRejected:   input.Quantity,
		UnitOfMeasure:      unit,
		RejectionDate:      rejectionDate,
		RejectionReason:    input.RejectionReason,
		ReportedBy:         input.ReportedBy,
		Status:             entity.RejectionStatusReported,
		Notes:              input.Notes,
		CreatedAt:          time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		number, err := NextDocNumber(r.Sequences, PrefixRejection, rejectionDate.Year())
		if err != nil {
			return err
		}
		rejection.RejectionNumber = number
		return r.Rejections.Create(rejection)
	})
	if err != nil {
		return nil, err
	}
	return rejection, nil
}

// Approve pasa REPORTED -> APPROVED y fija la bodega de retorno.
func (uc *RejectionUseCase) Approve(ctx context.Context, rejectionID, returnWarehouseID, approvedBy string) (*entity.MaterialRejection, error) {
	if rejectionID == "" || returnWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(returnWarehouseID)
	if err != nil {
		return nil, err
	}
	if !warehouse.IsActive || !warehouse.CanHoldMaterials {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.MaterialRejection
	err = uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		rejection, err := r.Rejections.GetByIDForUpdate(rejectionID)
		if err != nil {
			return err
		}
		if rejection.Status != entity.RejectionStatusReported {
			return domain.ErrInvalidState
		}
		now := time.Now()
		rejection.Status = entity.RejectionStatusApproved
		rejection.ReturnWarehouseID = returnWarehouseID
		rejection.ApprovedBy = approvedBy
		rejection.ApprovedAt = &now
		out = rejection
		return r.Rejections.Update(rejection)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Dispute pasa REPORTED -> DISPUTED (la bodega no reconoce el rechazo). Estado
// terminal: no toca saldos.
func (uc *RejectionUseCase) Dispute(ctx context.Context, rejectionID, reviewedBy, reason string) (*entity.MaterialRejection, error) {
	if rejectionID == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.MaterialRejection
	err := uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		rejection, err := r.Rejections.GetByIDForUpdate(rejectionID)
		if err != nil {
			return err
		}
		if rejection.Status != entity.RejectionStatusReported {
			return domain.ErrInvalidState
		}
		rejection.Status = entity.RejectionStatusDisputed
		if reason != "" {
			rejection.Notes = reason
		}
		rejection.ApprovedBy = reviewedBy
		out = rejection
		return r.Rejections.Update(rejection)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Receive pasa APPROVED -> RECEIVED_AT_WAREHOUSE: descuenta al contratista en
// unidad canónica, acredita a la bodega de retorno en su unidad de
// almacenamiento y estampa received_at, que es la fecha que cuenta para el
// inventario esperado.
func (uc *RejectionUseCase) Receive(ctx context.Context, rejectionID, receivedBy string) (*entity.MaterialRejection, error) {
	if rejectionID == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.MaterialRejection
	err := uc.txRunner.Run(ctx, func(r LedgerRepos) error {
		rejection, err := r.Rejections.GetByIDForUpdate(rejectionID)
		if err != nil {
			return err
		}
		if rejection.Status != entity.RejectionStatusApproved {
			return domain.ErrInvalidState
		}
		material, err := uc.materialRepo.GetByID(rejection.MaterialID)
		if err != nil {
			return err
		}
		baseQty, err := uc.conversions.Convert(material.ID, rejection.QuantityRejected, rejection.UnitOfMeasure, material.Unit)
		if err != nil {
			return err
		}

		// Orden global de locks: bodega antes que contratista.
		stock, err := r.WarehouseStock.GetForUpdate(rejection.ReturnWarehouseID, rejection.MaterialID)
		if err == domain.ErrNotFound {
			stock = &entity.WarehouseInventory{
				WarehouseID:     rejection.ReturnWarehouseID,
				MaterialID:      rejection.MaterialID,
				CurrentQuantity: decimal.Zero,
				UnitOfMeasure:   conversion.Normalize(material.Unit),
			}
		} else if err != nil {
			return err
		}
		credit, err := uc.conversions.Convert(material.ID, rejection.QuantityRejected, rejection.UnitOfMeasure, stock.UnitOfMeasure)
		if err != nil {
			return err
		}
		stock.CurrentQuantity = stock.CurrentQuantity.Add(credit)
		stock.LastUpdated = time.Now()
		if err := r.WarehouseStock.Upsert(stock); err != nil {
			return err
		}

		balance, err := r.ContractorStock.GetForUpdate(rejection.ContractorID, rejection.MaterialID)
		if err == domain.ErrNotFound {
			balance = &entity.ContractorInventory{
				ContractorID: rejection.ContractorID,
				MaterialID:   rejection.MaterialID,
				Quantity:     decimal.Zero,
			}
		} else if err != nil {
			return err
		}
		// Puede quedar negativo: devolver más de lo entregado es en sí una
		// señal que el análisis de varianza recogerá.
		balance.Quantity = balance.Quantity.Sub(baseQty)
		balance.LastUpdated = time.Now()
		if err := r.ContractorStock.Upsert(balance); err != nil {
			return err
		}

		grn, err := NextDocNumber(r.Sequences, PrefixGoodsReceipt, time.Now().Year())
		if err != nil {
			return err
		}
		now := time.Now()
		rejection.Status = entity.RejectionStatusReceived
		rejection.ReceivedBy = receivedBy
		rejection.ReceivedAt = &now
		rejection.WarehouseGRNNumber = grn
		// La cantidad canónica se congela aquí: es la que descuenta el ledger y
		// la que suma el inventario esperado.
		rejection.QuantityInBaseUnit = baseQty
		rejection.BaseUnit = conversion.Normalize(material.Unit)
		out = rejection
		return r.Rejections.Update(rejection)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByStatus devuelve devoluciones por estado; vacío lista todas.
func (uc *RejectionUseCase) ListByStatus(status string) ([]entity.MaterialRejection, error) {
	return uc.rejectionRepo.ListByStatus(status)
}
