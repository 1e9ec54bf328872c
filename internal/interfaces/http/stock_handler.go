package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/dto"
	"github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// StockHandler expone los saldos del libro y la vista previa del inventario
// esperado. Solo lecturas: las mutaciones van por los casos de uso.
type StockHandler struct {
	warehouseStock  repository.WarehouseInventoryRepository
	contractorStock repository.ContractorInventoryRepository
	finishedStock   repository.FinishedGoodsInventoryRepository
	expected        *inventory.ExpectedCalculator
}

// NewStockHandler construye el handler de saldos.
func NewStockHandler(
	warehouseStock repository.WarehouseInventoryRepository,
	contractorStock repository.ContractorInventoryRepository,
	finishedStock repository.FinishedGoodsInventoryRepository,
	expected *inventory.ExpectedCalculator,
) *StockHandler {
	return &StockHandler{
		warehouseStock:  warehouseStock,
		contractorStock: contractorStock,
		finishedStock:   finishedStock,
		expected:        expected,
	}
}

// WarehouseStock godoc
// @Summary      Saldos de material de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {array}  dto.WarehouseStockResponse
// @Router       /api/warehouses/{id}/stock [get]
func (h *StockHandler) WarehouseStock(c *fiber.Ctx) error {
	balances, err := h.warehouseStock.ListByWarehouse(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.WarehouseStockResponse, 0, len(balances))
	for i := range balances {
		out = append(out, dto.FromWarehouseStock(&balances[i]))
	}
	return c.JSON(out)
}

// FinishedStock devuelve los saldos de producto terminado de una bodega.
func (h *StockHandler) FinishedStock(c *fiber.Ctx) error {
	balances, err := h.finishedStock.ListByWarehouse(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.FinishedStockResponse, 0, len(balances))
	for i := range balances {
		out = append(out, dto.FromFinishedStock(&balances[i]))
	}
	return c.JSON(out)
}

// ContractorStock godoc
// @Summary      Saldos de material en poder de un contratista
// @Description  El saldo puede ser negativo: consumo reportado por encima de lo entregado.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del contratista"
// @Success      200  {array}   dto.ContractorStockResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/contractors/{id}/stock [get]
func (h *StockHandler) ContractorStock(c *fiber.Ctx) error {
	contractorID := c.Params("id")
	if err := requireOwnContractor(c, contractorID); err != nil {
		return err
	}
	balances, err := h.contractorStock.ListByContractor(contractorID)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ContractorStockResponse, 0, len(balances))
	for i := range balances {
		out = append(out, dto.FromContractorStock(&balances[i]))
	}
	return c.JSON(out)
}

// ExpectedStock godoc
// @Summary      Inventario esperado de un par contratista+material
// @Description  Vista previa sin bloqueo: apertura + entregado - consumido - devuelto recibido.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id           path   string  true   "ID del contratista"
// @Param        material_id  query  string  true   "ID del material"
// @Param        as_of        query  string  false  "Fecha de corte YYYY-MM-DD (default hoy)"
// @Success      200  {object}  dto.ExpectedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/contractors/{id}/expected [get]
func (h *StockHandler) ExpectedStock(c *fiber.Ctx) error {
	contractorID := c.Params("id")
	if err := requireOwnContractor(c, contractorID); err != nil {
		return err
	}
	asOf, err := parseDate(c.Query("as_of"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe ser YYYY-MM-DD"})
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}
	res, err := h.expected.Expected(contractorID, c.Query("material_id"), asOf)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ExpectedResponse{
		ContractorID: res.ContractorID,
		MaterialID:   res.MaterialID,
		Expected:     res.Expected,
		Opening:      res.Opening,
		Issued:       res.Issued,
		Consumed:     res.Consumed,
		Rejected:     res.Rejected,
		WindowStart:  res.WindowStart,
		WindowEnd:    res.WindowEnd,
		HasBaseline:  res.HasBaseline,
	})
}

// requireOwnContractor limita al rol contractor a su propio contratista; los
// demás roles ven cualquiera.
func requireOwnContractor(c *fiber.Ctx, contractorID string) error {
	if GetRole(c) == entity.RoleContractor && GetContractorID(c) != contractorID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	return nil
}
