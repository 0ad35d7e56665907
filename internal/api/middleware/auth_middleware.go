package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/approvals-api/configs"
	"github.com/maheshrc27/approvals-api/internal/api/handlers"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/pkg/utils"
)

type AuthMiddleware struct {
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// AuthMiddleware resolves the acting user from the session cookie or a
// bearer token and stores it for the handlers.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		if tokenString == "" {
			tokenString = bearerToken(c.Get(fiber.HeaderAuthorization))
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing session token",
			})
		}

		claims, err := utils.ValidateToken(m.cfg.SecretKey, tokenString)
		if err != nil {
			c.Cookie(&fiber.Cookie{
				Name:   m.cfg.CookieName,
				Value:  "",
				Path:   "/",
				MaxAge: -1, // Delete cookie
			})

			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		handlers.SetActor(c, models.Actor{
			ID:       claims.UserID,
			Role:     models.ParseRole(claims.Role),
			ClientID: claims.ClientID,
			Name:     claims.Name,
		})
		return c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
