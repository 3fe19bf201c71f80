package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
)

// PrincipalKey is the fiber.Locals key holding the authenticated *models.Principal.
const PrincipalKey = "user"

// TokenParser turns a bearer token into a principal.
type TokenParser interface {
	ParseToken(token string) (*models.Principal, error)
}

// Auth validates the bearer token and attaches the principal to the request.
func Auth(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return types.Unauthenticated("User is not authorized or token is missing")
		}

		principal, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			return err
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

// RequireRoles rejects principals holding none of roles. It must run after Auth.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentPrincipal(c).HasRole(roles...) {
			return types.Forbidden("You do not have the appropriate permissions")
		}
		return c.Next()
	}
}

// CurrentPrincipal returns the principal attached by Auth, or nil.
func CurrentPrincipal(c *fiber.Ctx) *models.Principal {
	p, _ := c.Locals(PrincipalKey).(*models.Principal)
	return p
}
