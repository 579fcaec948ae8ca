package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/application/usecase"
)

// WarehouseHandler handles godowns and their kunchinittu stacks.
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler builds the handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Create a godown
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Godown data"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCode godoc
// @Summary      Get a godown by code
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Godown code"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{code} [get]
func (h *WarehouseHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List godowns
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WarehouseListResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateStorageUnit godoc
// @Summary      Add a kunchinittu stack to a godown
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Godown code"
// @Param        body  body  dto.CreateStorageUnitRequest  true  "Stack data"
// @Success      201   {object}  dto.StorageUnitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{code}/units [post]
func (h *WarehouseHandler) CreateStorageUnit(c *fiber.Ctx) error {
	var in dto.CreateStorageUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateStorageUnit(c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStorageUnits godoc
// @Summary      List a godown's kunchinittu stacks
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Godown code"
// @Success      200   {object}  dto.StorageUnitListResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{code}/units [get]
func (h *WarehouseHandler) ListStorageUnits(c *fiber.Ctx) error {
	out, err := h.uc.ListStorageUnits(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
