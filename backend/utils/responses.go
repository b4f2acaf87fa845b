package utils

import (
	"github.com/gofiber/fiber/v2"
)

// PaginatedResponse is the envelope for list endpoints.
type PaginatedResponse struct {
	Items       interface{} `json:"items"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	Total       int64       `json:"total"`
}

// Paginate writes one page of results with the computed page count.
func Paginate(c *fiber.Ctx, items interface{}, total int64, page, limit int) error {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return c.JSON(PaginatedResponse{
		Items:       items,
		TotalPages:  totalPages,
		CurrentPage: page,
		Total:       total,
	})
}

// Message writes a 200 response with a display message.
func Message(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"message": message})
}

// ErrorMessage writes an error response with a deterministic message the
// frontend matches for display.
func ErrorMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// BadRequest writes a 400 Bad Request.
func BadRequest(c *fiber.Ctx, message string) error {
	return ErrorMessage(c, fiber.StatusBadRequest, message)
}

// Unauthorized writes a 401 Unauthorized.
func Unauthorized(c *fiber.Ctx, message string) error {
	return ErrorMessage(c, fiber.StatusUnauthorized, message)
}

// Forbidden writes a 403 Forbidden.
func Forbidden(c *fiber.Ctx, message string) error {
	return ErrorMessage(c, fiber.StatusForbidden, message)
}

// NotFound writes a 404 Not Found.
func NotFound(c *fiber.Ctx, message string) error {
	return ErrorMessage(c, fiber.StatusNotFound, message)
}

// ServerError writes a generic 500; internal failure details stay in the
// server log, never in the response body.
func ServerError(c *fiber.Ctx) error {
	return ErrorMessage(c, fiber.StatusInternalServerError, "Server error")
}

// ValidationError writes a 400 with per-field validation details.
func ValidationError(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation error",
		"details": errors,
	})
}
