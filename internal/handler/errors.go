package handler

import (
	"errors"

	"storeminds/internal/service"
	"storeminds/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable is checked in order; the first errors.Is match wins.
var errorTable = []errorMapping{
	{service.ErrEmptyCart, fiber.StatusBadRequest, "empty_cart"},
	{service.ErrValidation, fiber.StatusBadRequest, "validation"},
	{service.ErrItemNotFound, fiber.StatusNotFound, "item_not_found"},
	{service.ErrTransactionMissing, fiber.StatusNotFound, "transaction_not_found"},
	{service.ErrCategoryNotFound, fiber.StatusNotFound, "category_not_found"},
	{service.ErrSupplierNotFound, fiber.StatusNotFound, "supplier_not_found"},
	{service.ErrUserNotFound, fiber.StatusNotFound, "user_not_found"},
	{service.ErrInsufficientStock, fiber.StatusConflict, "insufficient_stock"},
	{service.ErrTotalMismatch, fiber.StatusConflict, "total_mismatch"},
	{service.ErrSKUExists, fiber.StatusConflict, "sku_exists"},
	{service.ErrCategoryExists, fiber.StatusConflict, "category_exists"},
	{service.ErrUsernameExists, fiber.StatusConflict, "username_exists"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "invalid_credentials"},
	{jwt.ErrInvalidToken, fiber.StatusUnauthorized, "invalid_token"},
	{jwt.ErrMissingToken, fiber.StatusUnauthorized, "missing_token"},
	{service.ErrStorage, fiber.StatusServiceUnavailable, "storage_failure"},
}

// writeError renders err as {error, code}. Storage details stay in the logs.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if !errors.Is(err, m.err) {
			continue
		}
		body := fiber.Map{"error": err.Error(), "code": m.code}
		if m.status == fiber.StatusServiceUnavailable {
			body["error"] = "Storage unavailable, please retry"
		}
		var stockErr *service.StockError
		if errors.As(err, &stockErr) {
			body["item_id"] = stockErr.ItemID
		}
		return c.Status(m.status).JSON(body)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "code": "internal"})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message, "code": "validation"})
}

func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
