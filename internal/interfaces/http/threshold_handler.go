package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/dto"
	"github.com/jhoicas/ObraStock-api/internal/application/threshold"
)

// ThresholdHandler maneja los umbrales de varianza configurables.
type ThresholdHandler struct {
	uc *threshold.AdminUseCase
}

// NewThresholdHandler construye el handler de umbrales.
func NewThresholdHandler(uc *threshold.AdminUseCase) *ThresholdHandler {
	return &ThresholdHandler{uc: uc}
}

// Set godoc
// @Summary      Fijar umbral de varianza
// @Description  contractor_id vacío fija el default del material; con valor, el umbral del par. El umbral vigente anterior del mismo alcance queda inactivo.
// @Tags         thresholds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetThresholdRequest  true  "material_id, threshold_pct en (0, 100]"
// @Success      201   {object}  dto.ThresholdResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/thresholds [post]
func (h *ThresholdHandler) Set(c *fiber.Ctx) error {
	var in dto.SetThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.uc.Set(threshold.SetThresholdInput{
		ContractorID: in.ContractorID,
		MaterialID:   in.MaterialID,
		ThresholdPct: in.ThresholdPct,
		Notes:        in.Notes,
		CreatedBy:    GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromThreshold(t))
}

// Deactivate desactiva el umbral vigente de un alcance
// (?contractor_id=&material_id=).
func (h *ThresholdHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Query("contractor_id"), c.Query("material_id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List devuelve todos los umbrales, activos primero.
func (h *ThresholdHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ThresholdResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.FromThreshold(&list[i]))
	}
	return c.JSON(out)
}
