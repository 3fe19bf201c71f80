package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store"
)

// OrderHandler handles order routes. Admins see every order, others their own.
type OrderHandler struct {
	Store store.Store
}

// List handles GET /api/orders
// @Summary List orders
// @Description List orders visible to the principal with their line items
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.OrderView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	orders, err := h.Store.Orders().List(c.UserContext(), models.ScopeFor(p))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(orders)
}

// Get handles GET /api/orders/:id
// @Summary Get order
// @Description Get one order visible to the principal
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.OrderView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	order, err := h.Store.Orders().Get(c.UserContext(), id, models.ScopeFor(p))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(order)
}

// Create handles POST /api/orders
// @Summary Create order
// @Description Place an order for the principal, decrementing stock
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.OrderInput true "Line items"
// @Success 201 {object} models.OrderView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in services.OrderInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	lines, err := in.LineItems()
	if err != nil {
		return err
	}
	order, err := h.Store.Orders().Create(c.UserContext(), p.ID, lines)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
