package handler

import (
	"storeminds/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser creates a new account
// POST /api/users (admin only)
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.userService.CreateUser(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUsers lists accounts without password hashes
// GET /api/users (admin only)
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}

// DeleteUser removes an account; the caller cannot delete itself
// DELETE /api/users/:id (admin only)
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid user ID")
	}
	if self, ok := c.Locals("user_id").(uint); ok && self == id {
		return badRequest(c, "Cannot delete the signed-in user")
	}

	if err := h.userService.DeleteUser(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Deleted"})
}
