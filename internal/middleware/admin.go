package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nippo-app/nippo-backend/internal/config"
	"github.com/nippo-app/nippo-backend/internal/dto"
	"github.com/nippo-app/nippo-backend/internal/identity"
)

// AdminOnly gates the dashboard behind one configured admin email. The
// comparison is exact and case-sensitive; any mismatch, unauthenticated
// visitors included, is rejected before a single row is fetched. An
// empty ADMIN_EMAIL matches nobody.
func AdminOnly(cfg *config.Config) fiber.Handler {
	adminEmail := cfg.AdminEmail

	return func(c *fiber.Ctx) error {
		email, err := identity.GetEmail(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if adminEmail == "" || email != adminEmail {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}
