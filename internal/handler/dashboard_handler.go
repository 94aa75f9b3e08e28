package handler

import (
	"strconv"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the clinic-wide overview counters
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

// GetSalesMovement returns daily sale volumes for the last ?days= (default 30)
// GET /api/v1/dashboard/sales-movement
func (h *DashboardHandler) GetSalesMovement(c *fiber.Ctx) error {
	days := 30
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid days parameter"})
		}
		days = parsed
	}

	movement, err := h.dashboardService.GetSalesMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales movement"})
	}
	return c.JSON(movement)
}
