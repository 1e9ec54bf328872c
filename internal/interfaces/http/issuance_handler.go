package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/dto"
	"github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// IssuanceHandler maneja las entregas de material a contratistas.
type IssuanceHandler struct {
	uc           *inventory.IssueUseCase
	issuanceRepo repository.IssuanceRepository
}

// NewIssuanceHandler construye el handler de entregas.
func NewIssuanceHandler(uc *inventory.IssueUseCase, issuanceRepo repository.IssuanceRepository) *IssuanceHandler {
	return &IssuanceHandler{uc: uc, issuanceRepo: issuanceRepo}
}

// Issue godoc
// @Summary      Entregar material a contratista
// @Description  Descuenta la bodega y acredita al contratista en la unidad canónica, en una sola transacción.
// @Tags         issuances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueRequest  true  "warehouse_id, contractor_id, material_id, quantity, unit_of_measure"
// @Success      201   {object}  dto.IssuanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/issuances [post]
func (h *IssuanceHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	issuedDate, err := parseDate(in.IssuedDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "issued_date debe ser YYYY-MM-DD"})
	}
	issuance, err := h.uc.Issue(c.Context(), inventory.IssueInput{
		WarehouseID:   in.WarehouseID,
		ContractorID:  in.ContractorID,
		MaterialID:    in.MaterialID,
		Quantity:      in.Quantity,
		UnitOfMeasure: in.UnitOfMeasure,
		IssuedDate:    issuedDate,
		IssuedBy:      GetUserID(c),
		Notes:         in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromIssuance(issuance))
}

// ListByContractor devuelve las entregas de un contratista.
func (h *IssuanceHandler) ListByContractor(c *fiber.Ctx) error {
	contractorID := c.Params("id")
	if err := requireOwnContractor(c, contractorID); err != nil {
		return err
	}
	issuances, err := h.issuanceRepo.ListByContractor(contractorID)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.IssuanceResponse, 0, len(issuances))
	for i := range issuances {
		out = append(out, dto.FromIssuance(&issuances[i]))
	}
	return c.JSON(out)
}
