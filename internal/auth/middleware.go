package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/galsan/jungang-heights-api/pkg/util"
)

// RequireAdmin guards admin routes. The session cookie is checked before any
// handler or store call runs; there is no refresh or sliding expiry.
func RequireAdmin(sessions SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieName)
		if !sessions.Validate(c.UserContext(), token) {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		return c.Next()
	}
}
