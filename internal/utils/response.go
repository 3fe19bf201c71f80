package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// MessageResponse sends a confirmation message
func MessageResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(MessageResponseStruct{Message: message})
}

// ErrorResponse sends the standard error body. stackTrace is omitted when empty.
func ErrorResponse(c *fiber.Ctx, status int, message, errorType, stackTrace string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:     status,
		Title:      types.Title(status),
		Message:    message,
		Ok:         false,
		Type:       errorType,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		URL:        c.OriginalURL(),
		StackTrace: stackTrace,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusNotFound, message, types.TypeNotFound, "")
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status     int    `json:"status"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Ok         bool   `json:"ok"`
	Type       string `json:"type,omitempty"`
	Timestamp  string `json:"timestamp"`
	URL        string `json:"url"`
	StackTrace string `json:"stackTrace,omitempty"`
}

// MessageResponseStruct defines the schema for confirmation responses
type MessageResponseStruct struct {
	Message string `json:"message"`
}
