package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/application/usecase"
)

// HamaliHandler handles labor rates and daily labor entries.
type HamaliHandler struct {
	uc *usecase.HamaliUseCase
}

// NewHamaliHandler builds the handler.
func NewHamaliHandler(uc *usecase.HamaliUseCase) *HamaliHandler {
	return &HamaliHandler{uc: uc}
}

// SetRate godoc
// @Summary      Record a new per-bag labor rate (admin only)
// @Tags         hamali
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHamaliRateRequest  true  "Rate data"
// @Success      201   {object}  dto.HamaliRateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/hamali/rates [post]
func (h *HamaliHandler) SetRate(c *fiber.Ctx) error {
	var in dto.CreateHamaliRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetRate(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRates godoc
// @Summary      Rate history for a work type, newest first
// @Tags         hamali
// @Security     Bearer
// @Produce      json
// @Param        work_type  query  string  true  "loading | unloading | shifting | stacking"
// @Success      200  {object}  dto.HamaliRateListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/hamali/rates [get]
func (h *HamaliHandler) ListRates(c *fiber.Ctx) error {
	out, err := h.uc.ListRates(c.Query("work_type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateEntry godoc
// @Summary      Record labor done on a date, priced at that day's rate
// @Tags         hamali
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHamaliEntryRequest  true  "Entry data"
// @Success      201   {object}  dto.HamaliEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/hamali/entries [post]
func (h *HamaliHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateHamaliEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateEntry(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEntries godoc
// @Summary      Labor entries in a date window plus the period total
// @Tags         hamali
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Start date (YYYY-MM-DD)"
// @Param        to    query  string  true  "End date (YYYY-MM-DD)"
// @Success      200   {object}  dto.HamaliEntryListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/hamali/entries [get]
func (h *HamaliHandler) ListEntries(c *fiber.Ctx) error {
	out, err := h.uc.ListEntries(c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteEntry godoc
// @Summary      Delete a labor entry (admin only)
// @Tags         hamali
// @Security     Bearer
// @Param        id  path  string  true  "Entry ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hamali/entries/{id} [delete]
func (h *HamaliHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.uc.DeleteEntry(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
