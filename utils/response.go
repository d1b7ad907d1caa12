package utils

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse writes the standard error envelope. Upstream failures keep
// their detail in the "error" field, matching what API consumers already
// parse. 5xx errors are additionally reported to Sentry.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{
		"message": message,
	}
	if err != nil {
		response["error"] = err.Error()
		if status >= fiber.StatusInternalServerError {
			sentry.CaptureException(err)
		}
	}
	return c.Status(status).JSON(response)
}

// MessageResponse writes a bare {message} envelope.
func MessageResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// DataResponse writes {message, data}.
func DataResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

// Pointer returns a pointer to the given value.
func Pointer[T any](v T) *T {
	return &v
}

// ParseUint safely parses a string to uint, returning 0 on bad input.
func ParseUint(s string) uint {
	i, _ := strconv.ParseUint(s, 10, 32)
	return uint(i)
}
