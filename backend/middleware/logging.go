package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggingMiddleware logs every request with method, path, status and latency.
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		logger.Printf(
			"%s %s%s%s %s %s%d%s %v",
			c.IP(),
			getMethodColor(c.Method()), c.Method(), resetColor,
			c.Path(),
			getStatusColor(c.Response().StatusCode()), c.Response().StatusCode(), resetColor,
			time.Since(start),
		)

		return err
	}
}

const resetColor = "\033[0m"

func getStatusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m" // red
	case status >= 400:
		return "\033[33m" // yellow
	case status >= 300:
		return "\033[36m" // cyan
	case status >= 200:
		return "\033[32m" // green
	default:
		return "\033[37m"
	}
}

func getMethodColor(method string) string {
	switch method {
	case fiber.MethodGet:
		return "\033[34m" // blue
	case fiber.MethodPost:
		return "\033[33m" // yellow
	case fiber.MethodPut:
		return "\033[36m" // cyan
	case fiber.MethodDelete:
		return "\033[31m" // red
	default:
		return "\033[37m"
	}
}
