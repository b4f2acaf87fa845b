package middleware

import (
	"github.com/gofiber/fiber/v2"

	"cogniverse/backend/config"
	"cogniverse/backend/repository"
	"cogniverse/backend/utils"
)

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// RequireRole resolves the caller and rejects the request unless their role
// is one of the allowed ones.
func RequireRole(cfg *config.Config, users repository.UserRepository, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return utils.Forbidden(c, "Forbidden")
	}
}
