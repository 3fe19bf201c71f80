package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/config"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store"
)

// HealthHandler reports storage reachability.
type HealthHandler struct {
	Config *config.Config
	Store  store.Store
}

// Check handles GET /health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.Store)
	status := fiber.StatusOK
	if !result.Healthy() {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
