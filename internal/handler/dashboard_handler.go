package handler

import (
	"strconv"

	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns the landing-page aggregates
// GET /api/v1/dashboard
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.dashboardService.GetOverview()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard data"})
	}
	return c.JSON(overview)
}

// StockMovement returns the daily movement series for the chart
// GET /api/v1/dashboard/stock-movement
func (h *DashboardHandler) StockMovement(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "7"))

	movement, err := h.dashboardService.GetStockMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}
	return c.JSON(movement)
}
