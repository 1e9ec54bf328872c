package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/catalog"
	"github.com/jhoicas/ObraStock-api/internal/application/dto"
)

// CatalogHandler maneja los maestros: materiales, conversiones, bodegas,
// contratistas, proveedores y productos terminados.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateMaterial godoc
// @Summary      Crear material
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "code, name, unit (canónica)"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *CatalogHandler) CreateMaterial(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.uc.CreateMaterial(catalog.CreateMaterialInput{
		Code:        in.Code,
		Name:        in.Name,
		Unit:        in.Unit,
		Description: in.Description,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMaterial(m))
}

// ListMaterials godoc
// @Summary      Listar materiales
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/materials [get]
func (h *CatalogHandler) ListMaterials(c *fiber.Ctx) error {
	materials, err := h.uc.ListMaterials()
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		out = append(out, dto.FromMaterial(&materials[i]))
	}
	return c.JSON(out)
}

// CreateConversion godoc
// @Summary      Registrar factor de conversión de unidades
// @Description  Una fila por par direccional; la inversa se deriva al resolver.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.CreateConversionRequest  true  "from_unit, to_unit, factor > 0"
// @Success      201   {object}  dto.ConversionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/conversions [post]
func (h *CatalogHandler) CreateConversion(c *fiber.Ctx) error {
	var in dto.CreateConversionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	conv, err := h.uc.CreateConversion(catalog.CreateConversionInput{
		MaterialID: c.Params("id"),
		FromUnit:   in.FromUnit,
		ToUnit:     in.ToUnit,
		Factor:     in.Factor,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromConversion(conv))
}

// ListConversions devuelve los factores registrados de un material.
func (h *CatalogHandler) ListConversions(c *fiber.Ctx) error {
	conversions, err := h.uc.ListConversions(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ConversionResponse, 0, len(conversions))
	for i := range conversions {
		out = append(out, dto.FromConversion(&conversions[i]))
	}
	return c.JSON(out)
}

// CreateWarehouse godoc
// @Summary      Crear bodega
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "code, name; debe poder almacenar materiales o producto terminado"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *CatalogHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	w, err := h.uc.CreateWarehouse(catalog.CreateWarehouseInput{
		Code:                 in.Code,
		Name:                 in.Name,
		Location:             in.Location,
		OwnerType:            in.OwnerType,
		CanHoldMaterials:     in.CanHoldMaterials,
		CanHoldFinishedGoods: in.CanHoldFinishedGoods,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromWarehouse(w))
}

// ListWarehouses devuelve todas las bodegas.
func (h *CatalogHandler) ListWarehouses(c *fiber.Ctx) error {
	warehouses, err := h.uc.ListWarehouses()
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		out = append(out, dto.FromWarehouse(&warehouses[i]))
	}
	return c.JSON(out)
}

// CreateContractor godoc
// @Summary      Crear contratista
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContractorRequest  true  "code, name"
// @Success      201   {object}  dto.ContractorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/contractors [post]
func (h *CatalogHandler) CreateContractor(c *fiber.Ctx) error {
	var in dto.CreateContractorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	contractor, err := h.uc.CreateContractor(in.Code, in.Name, in.ContactName, in.Phone, in.Email)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromContractor(contractor))
}

// ListContractors devuelve todos los contratistas.
func (h *CatalogHandler) ListContractors(c *fiber.Ctx) error {
	contractors, err := h.uc.ListContractors()
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ContractorResponse, 0, len(contractors))
	for i := range contractors {
		out = append(out, dto.FromContractor(&contractors[i]))
	}
	return c.JSON(out)
}

// CreateSupplier crea un proveedor.
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	supplier, err := h.uc.CreateSupplier(in.Code, in.Name, in.Email, in.Phone)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromSupplier(supplier))
}

// ListFinishedGoods devuelve el catálogo de producto terminado.
func (h *CatalogHandler) ListFinishedGoods(c *fiber.Ctx) error {
	goods, err := h.uc.ListFinishedGoods()
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.FinishedGoodResponse, 0, len(goods))
	for i := range goods {
		out = append(out, dto.FromFinishedGood(&goods[i]))
	}
	return c.JSON(out)
}

// GetBOM godoc
// @Summary      Lista de materiales de un producto terminado
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto terminado"
// @Success      200  {array}   dto.BOMItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finished-goods/{id}/bom [get]
func (h *CatalogHandler) GetBOM(c *fiber.Ctx) error {
	items, err := h.uc.GetBOM(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.BOMItemResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.FromBOMItem(&items[i]))
	}
	return c.JSON(out)
}
