package handler

import (
	"storeminds/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboard returns stock totals and the latest activity
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.GetDashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dashboard)
}

// GetSalesTrend returns revenue per day
// Query params: days (default 7)
func (h *DashboardHandler) GetSalesTrend(c *fiber.Ctx) error {
	days := c.QueryInt("days", service.DefaultTrendDays)
	if days <= 0 {
		days = service.DefaultTrendDays
	}

	data, err := h.service.GetSalesTrend(c.UserContext(), days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(data)
}

// GetTopProducts returns the best sellers
// Query params: limit (default 5)
func (h *DashboardHandler) GetTopProducts(c *fiber.Ctx) error {
	data, err := h.service.GetTopProducts(c.UserContext(), c.QueryInt("limit", service.DefaultTopProducts))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(data)
}

func (h *DashboardHandler) GetDailySales(c *fiber.Ctx) error {
	data, err := h.service.GetDailySales(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(data)
}
