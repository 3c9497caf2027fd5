package handler

import (
	"strconv"
	"time"

	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ReportHandler serves the director's report screens and PDF exports.
type ReportHandler struct {
	reportService service.ReportService
	exportService service.ExportService
}

func NewReportHandler(reportService service.ReportService, exportService service.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// StockReport returns the filtered item overview with summary counters
// GET /api/v1/reports/stock
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	filter := repository.ItemFilter{
		Search:      c.Query("search"),
		StockStatus: model.StockStatus(c.Query("stock_status")),
		ActiveOnly:  true,
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid category_id"})
		}
		filter.CategoryID = &categoryID
	}

	report, err := h.reportService.StockReport(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build stock report"})
	}
	return c.JSON(report)
}

// IncomingReport returns the filtered receipt list with totals
// GET /api/v1/reports/incoming
func (h *ReportHandler) IncomingReport(c *fiber.Ctx) error {
	report, err := h.reportService.IncomingReport(transactionFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build incoming report"})
	}
	return c.JSON(report)
}

// OutgoingReport returns the filtered release list with totals
// GET /api/v1/reports/outgoing
func (h *ReportHandler) OutgoingReport(c *fiber.Ctx) error {
	report, err := h.reportService.OutgoingReport(transactionFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build outgoing report"})
	}
	return c.JSON(report)
}

// RequestReport returns the filtered requisition list with status breakdown
// GET /api/v1/reports/requests
func (h *ReportHandler) RequestReport(c *fiber.Ctx) error {
	filter := repository.RequestFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if from, err := time.Parse("2006-01-02", c.Query("date_from")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("date_to")); err == nil {
		filter.DateTo = &to
	}

	report, err := h.reportService.RequestReport(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build request report"})
	}
	return c.JSON(report)
}

// ActivityHistory returns the merged incoming/outgoing/request feed
// GET /api/v1/reports/activity
func (h *ReportHandler) ActivityHistory(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	entries, err := h.reportService.ActivityHistory(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build activity history"})
	}
	return c.JSON(entries)
}

// ExportIncomingPDF serves the incoming report as a PDF attachment
// GET /api/v1/reports/incoming/pdf
func (h *ReportHandler) ExportIncomingPDF(c *fiber.Ctx) error {
	data, err := h.exportService.IncomingReportPDF(transactionFilter(c), middleware.ActorFromContext(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate PDF"})
	}

	filename := "incoming_report_" + time.Now().Format("20060102") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportOutgoingPDF serves the outgoing report as a PDF attachment
// GET /api/v1/reports/outgoing/pdf
func (h *ReportHandler) ExportOutgoingPDF(c *fiber.Ctx) error {
	data, err := h.exportService.OutgoingReportPDF(transactionFilter(c), middleware.ActorFromContext(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate PDF"})
	}

	filename := "outgoing_report_" + time.Now().Format("20060102") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
