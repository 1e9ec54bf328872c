package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/dto"
	"github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// ProcurementHandler maneja órdenes de compra y recepciones de mercancía.
type ProcurementHandler struct {
	uc     *inventory.ProcurementUseCase
	poRepo repository.PurchaseOrderRepository
}

// NewProcurementHandler construye el handler de compras.
func NewProcurementHandler(uc *inventory.ProcurementUseCase, poRepo repository.PurchaseOrderRepository) *ProcurementHandler {
	return &ProcurementHandler{uc: uc, poRepo: poRepo}
}

// CreatePO godoc
// @Summary      Crear orden de compra
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePORequest  true  "supplier_id, lines"
// @Success      201   {object}  dto.POResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *ProcurementHandler) CreatePO(c *fiber.Ctx) error {
	var in dto.CreatePORequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	orderDate, err := parseDate(in.OrderDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_date debe ser YYYY-MM-DD"})
	}
	input := inventory.CreatePOInput{
		SupplierID: in.SupplierID,
		OrderDate:  orderDate,
		CreatedBy:  GetUserID(c),
		Notes:      in.Notes,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, inventory.POLineInput{
			MaterialID:    l.MaterialID,
			Quantity:      l.Quantity,
			UnitOfMeasure: l.UnitOfMeasure,
		})
	}
	po, err := h.uc.CreatePurchaseOrder(c.Context(), input)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPurchaseOrder(po))
}

// Approve pasa la orden de DRAFT a APPROVED.
func (h *ProcurementHandler) Approve(c *fiber.Ctx) error {
	if err := h.uc.ApprovePurchaseOrder(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return h.respondWith(c, c.Params("id"))
}

// Cancel anula una orden que aún no recibió mercancía.
func (h *ProcurementHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.CancelPurchaseOrder(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return h.respondWith(c, c.Params("id"))
}

// ReceiveGoods godoc
// @Summary      Recibir mercancía contra orden
// @Description  Acredita la bodega por línea, acumula lo recibido en la orden y recalcula estados.
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveGoodsRequest  true  "purchase_order_id, warehouse_id, lines"
// @Success      201   {object}  dto.GoodsReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/goods-receipts [post]
func (h *ProcurementHandler) ReceiveGoods(c *fiber.Ctx) error {
	var in dto.ReceiveGoodsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	receiptDate, err := parseDate(in.ReceiptDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "receipt_date debe ser YYYY-MM-DD"})
	}
	input := inventory.ReceiveGoodsInput{
		PurchaseOrderID: in.PurchaseOrderID,
		WarehouseID:     in.WarehouseID,
		ReceiptDate:     receiptDate,
		ReceivedBy:      GetUserID(c),
		Notes:           in.Notes,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, inventory.ReceiptLineInput{
			POLineID:         l.POLineID,
			QuantityReceived: l.QuantityReceived,
			BatchNumber:      l.BatchNumber,
			Remarks:          l.Remarks,
		})
	}
	receipt, err := h.uc.ReceiveGoods(c.Context(), input)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromGoodsReceipt(receipt))
}

// GetByID devuelve la orden con sus líneas y avance.
func (h *ProcurementHandler) GetByID(c *fiber.Ctx) error {
	return h.respondWith(c, c.Params("id"))
}

// List devuelve todas las órdenes de compra.
func (h *ProcurementHandler) List(c *fiber.Ctx) error {
	orders, err := h.poRepo.List()
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.POResponse, 0, len(orders))
	for i := range orders {
		out = append(out, dto.FromPurchaseOrder(&orders[i]))
	}
	return c.JSON(out)
}

func (h *ProcurementHandler) respondWith(c *fiber.Ctx, id string) error {
	po, err := h.poRepo.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.FromPurchaseOrder(po))
}
