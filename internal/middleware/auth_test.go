package middleware_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/handlers"
	"github.com/localnerve/shopdb/internal/middleware"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticParser accepts only the token "good".
type staticParser struct {
	principal models.Principal
}

func (p staticParser) ParseToken(token string) (*models.Principal, error) {
	if token != "good" {
		return nil, types.Unauthenticated("User is not authorized")
	}
	principal := p.principal
	return &principal, nil
}

func newApp(role string, roles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.NewErrorHandler(true)})
	chain := []fiber.Handler{middleware.Auth(staticParser{models.Principal{ID: 3, Role: role}})}
	if len(roles) > 0 {
		chain = append(chain, middleware.RequireRoles(roles...))
	}
	chain = append(chain, func(c *fiber.Ctx) error {
		p := middleware.CurrentPrincipal(c)
		if p == nil {
			return errors.New("no principal")
		}
		return c.JSON(p)
	})
	app.Get("/", chain...)
	return app
}

func status(t *testing.T, app *fiber.App, header string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuth(t *testing.T) {
	app := newApp(models.RoleUser)

	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, "Basic good"))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, "Bearer "))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, "Bearer bad"))
	assert.Equal(t, fiber.StatusOK, status(t, app, "Bearer good"))
	assert.Equal(t, fiber.StatusOK, status(t, app, "bearer good"))
}

func TestRequireRoles(t *testing.T) {
	assert.Equal(t, fiber.StatusForbidden, status(t, newApp(models.RoleUser, models.RoleAdmin, models.RoleExpert), "Bearer good"))
	assert.Equal(t, fiber.StatusOK, status(t, newApp(models.RoleExpert, models.RoleAdmin, models.RoleExpert), "Bearer good"))
	assert.Equal(t, fiber.StatusOK, status(t, newApp(models.RoleAdmin, models.RoleAdmin), "Bearer good"))
}
