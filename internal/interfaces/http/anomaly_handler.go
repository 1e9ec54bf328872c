package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/anomalies"
	"github.com/jhoicas/ObraStock-api/internal/application/dto"
)

// AnomalyHandler maneja la investigación de anomalías de varianza.
type AnomalyHandler struct {
	uc *anomalies.UseCase
}

// NewAnomalyHandler construye el handler de anomalías.
func NewAnomalyHandler(uc *anomalies.UseCase) *AnomalyHandler {
	return &AnomalyHandler{uc: uc}
}

// List godoc
// @Summary      Listar anomalías
// @Tags         anomalies
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "open | resolved | vacío = todas"
// @Success      200  {array}  dto.AnomalyResponse
// @Router       /api/anomalies [get]
func (h *AnomalyHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Query("status"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.AnomalyResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.FromAnomaly(&list[i]))
	}
	return c.JSON(out)
}

// Get devuelve una anomalía.
func (h *AnomalyHandler) Get(c *fiber.Ctx) error {
	a, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.FromAnomaly(a))
}

// Resolve godoc
// @Summary      Resolver anomalía
// @Description  Cierra la investigación con sus notas. Las anomalías no se borran.
// @Tags         anomalies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la anomalía"
// @Param        body  body  dto.ResolveAnomalyRequest  true  "notes"
// @Success      200   {object}  dto.AnomalyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/anomalies/{id}/resolve [post]
func (h *AnomalyHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveAnomalyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	a, err := h.uc.Resolve(c.Params("id"), GetUserID(c), in.Notes)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.FromAnomaly(a))
}
