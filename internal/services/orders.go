package services

import (
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
)

// OrderLineInput is one requested line. The product may be sent as "id" or "productId".
type OrderLineInput struct {
	ID        *types.FlexInt64 `json:"id"`
	ProductID *types.FlexInt64 `json:"productId"`
	Quantity  *types.FlexInt64 `json:"quantity"`
}

// OrderInput is the create order payload. A single line object is accepted too.
type OrderInput struct {
	Products types.OneOrMany[OrderLineInput] `json:"products"`
}

// LineItems validates the payload and returns the line items to order.
func (in OrderInput) LineItems() ([]models.LineItem, error) {
	lines := in.Products.Items()
	if len(lines) == 0 {
		return nil, types.Validation("The order has no products")
	}

	items := make([]models.LineItem, 0, len(lines))
	for _, l := range lines {
		product := l.ProductID
		if product == nil {
			product = l.ID
		}
		if product == nil || l.Quantity == nil {
			return nil, types.Validation("Each product in the order must have 'id' and 'quantity'")
		}
		if product.Int64() <= 0 {
			return nil, types.Validation("Product id %d is not valid", product.Int64())
		}
		if l.Quantity.Int64() <= 0 {
			return nil, types.Validation("Quantity of product %d must be positive", product.Int64())
		}
		items = append(items, models.LineItem{ProductID: product.Int64(), Quantity: l.Quantity.Int64()})
	}
	return items, nil
}
