package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/dto"
	"github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
)

// ProductionHandler maneja los reportes de producción de contratistas y el
// ingreso del producto terminado a bodega.
type ProductionHandler struct {
	production    *inventory.ProductionUseCase
	finishedGoods *inventory.FinishedGoodsUseCase
}

// NewProductionHandler construye el handler de producción.
func NewProductionHandler(production *inventory.ProductionUseCase, finishedGoods *inventory.FinishedGoodsUseCase) *ProductionHandler {
	return &ProductionHandler{production: production, finishedGoods: finishedGoods}
}

// Report godoc
// @Summary      Reportar producción
// @Description  Registra la producción y descuenta del contratista los consumos derivados del BOM.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReportProductionRequest  true  "contractor_id, finished_good_id, quantity"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Report(c *fiber.Ctx) error {
	var in dto.ReportProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if GetRole(c) == entity.RoleContractor {
		in.ContractorID = GetContractorID(c)
	}
	producedAt, err := parseDate(in.ProducedAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "produced_at debe ser YYYY-MM-DD"})
	}
	record, err := h.production.ReportProduction(c.Context(), inventory.ReportProductionInput{
		ContractorID:   in.ContractorID,
		FinishedGoodID: in.FinishedGoodID,
		Quantity:       in.Quantity,
		ReportedBy:     GetUserID(c),
		ProducedAt:     producedAt,
		Notes:          in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProduction(record))
}

// ReceiveFinishedGoods godoc
// @Summary      Recibir producto terminado desde obra
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveFinishedGoodsRequest  true  "contractor_id, warehouse_id, finished_good_id, quantity"
// @Success      201   {object}  dto.FinishedGoodsReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/finished-goods-receipts [post]
func (h *ProductionHandler) ReceiveFinishedGoods(c *fiber.Ctx) error {
	var in dto.ReceiveFinishedGoodsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	receiptDate, err := parseDate(in.ReceiptDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "receipt_date debe ser YYYY-MM-DD"})
	}
	receipt, err := h.finishedGoods.Receive(c.Context(), inventory.ReceiveFinishedGoodsInput{
		ContractorID:   in.ContractorID,
		WarehouseID:    in.WarehouseID,
		FinishedGoodID: in.FinishedGoodID,
		Quantity:       in.Quantity,
		ReceiptDate:    receiptDate,
		ReceivedBy:     GetUserID(c),
		Notes:          in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromFinishedGoodsReceipt(receipt))
}
