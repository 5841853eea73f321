package handler

import (
	"storeminds/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PosHandler struct {
	service service.CheckoutService
}

func NewPosHandler(s service.CheckoutService) *PosHandler {
	return &PosHandler{service: s}
}

// Checkout records a sale from the POS cart
// POST /api/pos/checkout
func (h *PosHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	result, err := h.service.Checkout(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Transaction successful",
		"transactionId": result.TransactionID,
		"total":         result.Total,
	})
}
