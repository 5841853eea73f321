package handler

import (
	"storeminds/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var req service.ItemInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	item, err := h.service.CreateItem(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid item ID")
	}

	var req service.ItemInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	item, err := h.service.UpdateItem(c.UserContext(), id, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid item ID")
	}

	if err := h.service.DeleteItem(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Deleted"})
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	txns, err := h.service.ListTransactions(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(txns)
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid transaction ID")
	}

	txn, err := h.service.GetTransaction(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(txn)
}
