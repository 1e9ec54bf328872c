package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/dto"
	"github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
)

// RejectionHandler maneja el ciclo de devoluciones de material rechazado:
// REPORTED -> APPROVED -> RECEIVED_AT_WAREHOUSE, con DISPUTED como salida.
type RejectionHandler struct {
	uc *inventory.RejectionUseCase
}

// NewRejectionHandler construye el handler de devoluciones.
func NewRejectionHandler(uc *inventory.RejectionUseCase) *RejectionHandler {
	return &RejectionHandler{uc: uc}
}

// Report godoc
// @Summary      Reportar material rechazado
// @Description  Crea la devolución en REPORTED. No toca saldos: eso ocurre al recibirla en bodega.
// @Tags         rejections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReportRejectionRequest  true  "contractor_id, material_id, quantity, rejection_reason"
// @Success      201   {object}  dto.RejectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rejections [post]
func (h *RejectionHandler) Report(c *fiber.Ctx) error {
	var in dto.ReportRejectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if GetRole(c) == entity.RoleContractor {
		// El contratista solo reporta sobre sí mismo.
		in.ContractorID = GetContractorID(c)
	}
	rejectionDate, err := parseDate(in.RejectionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rejection_date debe ser YYYY-MM-DD"})
	}
	rejection, err := h.uc.Report(c.Context(), inventory.ReportInput{
		ContractorID:       in.ContractorID,
		MaterialID:         in.MaterialID,
		OriginalIssuanceID: in.OriginalIssuanceID,
		Quantity:           in.Quantity,
		UnitOfMeasure:      in.UnitOfMeasure,
		RejectionDate:      rejectionDate,
		RejectionReason:    in.RejectionReason,
		ReportedBy:         GetUserID(c),
		Notes:              in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRejection(rejection))
}

// Approve godoc
// @Summary      Aprobar devolución
// @Tags         rejections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la devolución"
// @Param        body  body  dto.ApproveRejectionRequest  true  "return_warehouse_id"
// @Success      200   {object}  dto.RejectionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rejections/{id}/approve [post]
func (h *RejectionHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveRejectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rejection, err := h.uc.Approve(c.Context(), c.Params("id"), in.ReturnWarehouseID, GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.FromRejection(rejection))
}

// Dispute marca la devolución como disputada; es terminal.
func (h *RejectionHandler) Dispute(c *fiber.Ctx) error {
	var in dto.DisputeRejectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rejection, err := h.uc.Dispute(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.FromRejection(rejection))
}

// Receive godoc
// @Summary      Recibir devolución en bodega
// @Description  Acredita la bodega de retorno, descuenta al contratista y genera el GRN. Desde aquí la cantidad cuenta en el esperado.
// @Tags         rejections
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.RejectionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rejections/{id}/receive [post]
func (h *RejectionHandler) Receive(c *fiber.Ctx) error {
	rejection, err := h.uc.Receive(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.FromRejection(rejection))
}

// ListByStatus devuelve devoluciones filtradas por estado (?status=REPORTED).
func (h *RejectionHandler) ListByStatus(c *fiber.Ctx) error {
	rejections, err := h.uc.ListByStatus(c.Query("status"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.RejectionResponse, 0, len(rejections))
	for i := range rejections {
		out = append(out, dto.FromRejection(&rejections[i]))
	}
	return c.JSON(out)
}
