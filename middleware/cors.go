package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const preflightMaxAge = 3600

var (
	defaultOrigins = []string{"http://localhost:3000"}

	corsMethods = strings.Join([]string{
		fiber.MethodGet, fiber.MethodPost, fiber.MethodPut,
		fiber.MethodDelete, fiber.MethodPatch, fiber.MethodOptions,
	}, ",")

	corsHeaders = strings.Join([]string{
		"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With",
	}, ",")
)

// CORS handles cross-origin requests from the admin frontend. Origins override
// the localhost default; an empty origin list after override allows any origin.
func CORS(origins ...string) fiber.Handler {
	if len(origins) == 0 {
		origins = defaultOrigins
	}

	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		if origin == "*" {
			allowed = nil
			break
		}
		allowed[origin] = true
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		switch {
		case allowed == nil:
			c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		case allowed[origin]:
			c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
			c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		}

		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}

		c.Set(fiber.HeaderAccessControlAllowMethods, corsMethods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, corsHeaders)
		c.Set(fiber.HeaderAccessControlMaxAge, strconv.Itoa(preflightMaxAge))
		return c.SendStatus(fiber.StatusNoContent)
	}
}
