package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/application/usecase"
)

// RiceProductionHandler handles rice production and dispatch records.
type RiceProductionHandler struct {
	uc *usecase.RiceProductionUseCase
}

// NewRiceProductionHandler builds the handler.
func NewRiceProductionHandler(uc *usecase.RiceProductionUseCase) *RiceProductionHandler {
	return &RiceProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Record rice production or loading (pending approval)
// @Tags         rice-productions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRiceProductionRequest  true  "Record data"
// @Success      201   {object}  dto.RiceProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rice-productions [post]
func (h *RiceProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRiceProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a rice record by ID
// @Tags         rice-productions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Record ID"
// @Success      200  {object}  dto.RiceProductionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rice-productions/{id} [get]
func (h *RiceProductionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List rice records in a date range
// @Tags         rice-productions
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  true   "Start date (YYYY-MM-DD)"
// @Param        to      query  string  true   "End date (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Page size"  default(20)
// @Param        offset  query  int     false  "Offset"     default(0)
// @Success      200     {object}  dto.RiceProductionListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/rice-productions [get]
func (h *RiceProductionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("from"), c.Query("to"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPending godoc
// @Summary      List rice records awaiting approval
// @Tags         rice-productions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Page size"  default(20)
// @Param        offset  query  int  false  "Offset"     default(0)
// @Success      200     {object}  dto.RiceProductionListResponse
// @Router       /api/rice-productions/pending [get]
func (h *RiceProductionHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Approve a pending rice record
// @Tags         rice-productions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Record ID"
// @Success      200  {object}  dto.RiceProductionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rice-productions/{id}/approve [post]
func (h *RiceProductionHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Reject a pending rice record
// @Tags         rice-productions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Record ID"
// @Success      200  {object}  dto.RiceProductionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rice-productions/{id}/reject [post]
func (h *RiceProductionHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a rice record that never entered the ledger
// @Tags         rice-productions
// @Security     Bearer
// @Param        id  path  string  true  "Record ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rice-productions/{id} [delete]
func (h *RiceProductionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
