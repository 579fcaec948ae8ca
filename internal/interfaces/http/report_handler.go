package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/application/report"
	"github.com/motherindia/millstock-api/internal/infrastructure/export"
	"github.com/motherindia/millstock-api/internal/infrastructure/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeCSV  = "text/csv"
)

// ReportHandler serves the replayed stock statements as JSON, PDF and
// spreadsheet downloads.
type ReportHandler struct {
	paddy        *report.PaddyStockUseCase
	rice         *report.RiceStockUseCase
	generator    *pdf.StatementGenerator
	exporter     *export.ExcelExporter
	rolloverHour int
}

// NewReportHandler builds the handler.
func NewReportHandler(
	paddy *report.PaddyStockUseCase,
	rice *report.RiceStockUseCase,
	generator *pdf.StatementGenerator,
	exporter *export.ExcelExporter,
	rolloverHour int,
) *ReportHandler {
	return &ReportHandler{
		paddy:        paddy,
		rice:         rice,
		generator:    generator,
		exporter:     exporter,
		rolloverHour: rolloverHour,
	}
}

// rangeFromQuery reads from/to, falling back to the current business date.
// Entries before the rollover hour belong to the previous operational day.
func (h *ReportHandler) rangeFromQuery(c *fiber.Ctx) (string, string) {
	from, to := report.DefaultRange(time.Now(), h.rolloverHour)
	if v := c.Query("from"); v != "" {
		from = v
	}
	if v := c.Query("to"); v != "" {
		to = v
	}
	return from, to
}

// Paddy godoc
// @Summary      Paddy stock statement for a date range
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Start date (YYYY-MM-DD), defaults to the business date"
// @Param        to    query  string  false  "End date (YYYY-MM-DD), defaults to the business date"
// @Success      200   {object}  dto.PaddyStockReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/paddy [get]
func (h *ReportHandler) Paddy(c *fiber.Ctx) error {
	from, to := h.rangeFromQuery(c)
	out, err := h.paddy.Report(from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rice godoc
// @Summary      Rice stock statement for a date range
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Start date (YYYY-MM-DD), defaults to the business date"
// @Param        to    query  string  false  "End date (YYYY-MM-DD), defaults to the business date"
// @Success      200   {object}  dto.RiceStockReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/rice [get]
func (h *ReportHandler) Rice(c *fiber.Ctx) error {
	from, to := h.rangeFromQuery(c)
	out, err := h.rice.Report(from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PaddyPDF godoc
// @Summary      Paddy stock statement as a printable PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to    query  string  false  "End date (YYYY-MM-DD)"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/paddy/pdf [get]
func (h *ReportHandler) PaddyPDF(c *fiber.Ctx) error {
	from, to := h.rangeFromQuery(c)
	rep, _, err := h.paddy.Statement(from, to)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.generator.GeneratePaddyStatement(rep, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, doc, mimePDF, fmt.Sprintf("paddy-stock-%s-%s.pdf", from, to))
}

// RicePDF godoc
// @Summary      Rice stock statement as a printable PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to    query  string  false  "End date (YYYY-MM-DD)"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/rice/pdf [get]
func (h *ReportHandler) RicePDF(c *fiber.Ctx) error {
	from, to := h.rangeFromQuery(c)
	rep, _, err := h.rice.Statement(from, to)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.generator.GenerateRiceStatement(rep, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, doc, mimePDF, fmt.Sprintf("rice-stock-%s-%s.pdf", from, to))
}

// PaddyExport godoc
// @Summary      Paddy stock statement as XLSX or CSV
// @Tags         reports
// @Security     Bearer
// @Param        format  query  string  false  "xlsx | csv"  default(xlsx)
// @Param        from    query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to      query  string  false  "End date (YYYY-MM-DD)"
// @Success      200     {file}  binary
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/paddy/export [get]
func (h *ReportHandler) PaddyExport(c *fiber.Ctx) error {
	from, to := h.rangeFromQuery(c)
	rep, _, err := h.paddy.Statement(from, to)
	if err != nil {
		return respondError(c, err)
	}
	name := fmt.Sprintf("paddy-stock-%s-%s", from, to)
	switch c.Query("format", "xlsx") {
	case "csv":
		data, err := h.exporter.PaddyCSV(rep)
		if err != nil {
			return respondError(c, err)
		}
		return sendFile(c, data, mimeCSV, name+".csv")
	case "xlsx":
		data, err := h.exporter.PaddyWorkbook(rep)
		if err != nil {
			return respondError(c, err)
		}
		return sendFile(c, data, mimeXLSX, name+".xlsx")
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "format must be xlsx or csv",
		})
	}
}

// RiceExport godoc
// @Summary      Rice stock statement as XLSX or CSV
// @Tags         reports
// @Security     Bearer
// @Param        format  query  string  false  "xlsx | csv"  default(xlsx)
// @Param        from    query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to      query  string  false  "End date (YYYY-MM-DD)"
// @Success      200     {file}  binary
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/rice/export [get]
func (h *ReportHandler) RiceExport(c *fiber.Ctx) error {
	from, to := h.rangeFromQuery(c)
	rep, _, err := h.rice.Statement(from, to)
	if err != nil {
		return respondError(c, err)
	}
	name := fmt.Sprintf("rice-stock-%s-%s", from, to)
	switch c.Query("format", "xlsx") {
	case "csv":
		data, err := h.exporter.RiceCSV(rep)
		if err != nil {
			return respondError(c, err)
		}
		return sendFile(c, data, mimeCSV, name+".csv")
	case "xlsx":
		data, err := h.exporter.RiceWorkbook(rep)
		if err != nil {
			return respondError(c, err)
		}
		return sendFile(c, data, mimeXLSX, name+".xlsx")
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "format must be xlsx or csv",
		})
	}
}

func sendFile(c *fiber.Ctx, data []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
