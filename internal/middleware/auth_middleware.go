package middleware

import (
	"strings"

	"go-procurement-fixtures/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireToken validates the operator's bearer token and stores its subject
// and scopes in the request locals.
func RequireToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("operator", claims.Subject)
		c.Locals("scopes", claims.Scopes)

		return c.Next()
	}
}

// RequireScope checks the scopes set by RequireToken.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scopes, ok := c.Locals("scopes").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No scopes found"})
		}

		for _, s := range scopes {
			if s == scope {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + scope + "' scope",
		})
	}
}
