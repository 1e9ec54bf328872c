package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/dto"
	"github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// TransferHandler maneja los traslados entre bodegas:
// DRAFT -> IN_TRANSIT -> COMPLETED, con CANCELLED desde DRAFT o IN_TRANSIT.
type TransferHandler struct {
	uc           *inventory.TransferUseCase
	transferRepo repository.TransferRepository
}

// NewTransferHandler construye el handler de traslados.
func NewTransferHandler(uc *inventory.TransferUseCase, transferRepo repository.TransferRepository) *TransferHandler {
	return &TransferHandler{uc: uc, transferRepo: transferRepo}
}

// Create godoc
// @Summary      Crear traslado entre bodegas
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "source, destination, lines (material o producto terminado)"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	transferDate, err := parseDate(in.TransferDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "transfer_date debe ser YYYY-MM-DD"})
	}
	input := inventory.CreateTransferInput{
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		TransferType:           in.TransferType,
		TransferDate:           transferDate,
		RequestedBy:            GetUserID(c),
		Notes:                  in.Notes,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, inventory.TransferLineInput{
			MaterialID:     l.MaterialID,
			FinishedGoodID: l.FinishedGoodID,
			Quantity:       l.Quantity,
			UnitOfMeasure:  l.UnitOfMeasure,
		})
	}
	transfer, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransfer(transfer))
}

// Submit pasa el traslado de DRAFT a IN_TRANSIT.
func (h *TransferHandler) Submit(c *fiber.Ctx) error {
	if err := h.uc.Submit(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return h.respondWith(c, c.Params("id"))
}

// Cancel anula un traslado que aún no se completó.
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return h.respondWith(c, c.Params("id"))
}

// Complete godoc
// @Summary      Completar traslado
// @Description  Mueve los saldos de la bodega origen a la destino bajo bloqueo de filas.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/complete [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	if err := h.uc.Complete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return h.respondWith(c, c.Params("id"))
}

// GetByID devuelve el traslado con sus líneas.
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	return h.respondWith(c, c.Params("id"))
}

// List devuelve todos los traslados.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	transfers, err := h.transferRepo.List()
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for i := range transfers {
		out = append(out, dto.FromTransfer(&transfers[i]))
	}
	return c.JSON(out)
}

func (h *TransferHandler) respondWith(c *fiber.Ctx, id string) error {
	transfer, err := h.transferRepo.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.FromTransfer(transfer))
}
