package handler

import (
	"storeminds/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	service service.MaintenanceService
}

func NewAdminHandler(s service.MaintenanceService) *AdminHandler {
	return &AdminHandler{service: s}
}

// Reset wipes operational data
// POST /api/reset (requires auth)
func (h *AdminHandler) Reset(c *fiber.Ctx) error {
	if err := h.service.Reset(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Database reset successfully"})
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
