package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store"
)

// ProductHandler serves products embedded with their brand and category.
type ProductHandler struct {
	*ResourceHandler[models.Product, models.ProductPatch]
	Store store.Store
}

// NewProductHandler wires reference checks into product writes.
func NewProductHandler(st store.Store) *ProductHandler {
	return &ProductHandler{
		ResourceHandler: &ResourceHandler[models.Product, models.ProductPatch]{
			Repo:   st.Products(),
			Entity: "product",
			Check: func(ctx context.Context, patch models.ProductPatch) error {
				return services.CheckProductReferences(ctx, st, patch)
			},
		},
		Store: st,
	}
}

// List handles GET /api/products
// @Summary List products
// @Description List every product with its brand and category
// @Tags Products
// @Produce json
// @Success 200 {array} models.ProductView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	views, err := h.Store.Products().ListDetailed(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(views)
}

// Get handles GET /api/products/:id
// @Summary Get product
// @Description Get one product with its brand and category
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.ProductView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	view, err := h.Store.Products().GetDetailed(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(view)
}
