package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/application/usecase"
)

// OutturnHandler handles milling lots: creation, listing and clearing.
type OutturnHandler struct {
	uc *usecase.OutturnUseCase
}

// NewOutturnHandler builds the handler.
func NewOutturnHandler(uc *usecase.OutturnUseCase) *OutturnHandler {
	return &OutturnHandler{uc: uc}
}

// Create godoc
// @Summary      Open a new outturn (milling lot)
// @Tags         outturns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOutturnRequest  true  "Outturn data"
// @Success      201   {object}  dto.OutturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/outturns [post]
func (h *OutturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOutturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCode godoc
// @Summary      Get an outturn by code
// @Tags         outturns
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Outturn code"
// @Success      200   {object}  dto.OutturnResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/outturns/{code} [get]
func (h *OutturnHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List outturns
// @Tags         outturns
// @Security     Bearer
// @Produce      json
// @Param        include_cleared  query  bool  false  "Include cleared lots"  default(false)
// @Success      200  {object}  dto.OutturnListResponse
// @Router       /api/outturns [get]
func (h *OutturnHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryBool("include_cleared", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Clear an outturn, writing off its remaining rice (admin only)
// @Tags         outturns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Outturn code"
// @Param        body  body  dto.ClearOutturnRequest  false  "Clearing date, defaults to today"
// @Success      200   {object}  dto.OutturnResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/outturns/{code}/clear [post]
func (h *OutturnHandler) Clear(c *fiber.Ctx) error {
	var in dto.ClearOutturnRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Clear(c.Params("code"), in.Date, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
