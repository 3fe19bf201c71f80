package models

import (
	"time"
)

// BrandRef is the brand embedded in a product view.
type BrandRef struct {
	BrandID int64  `json:"brandId"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// CategoryRef is the category embedded in a product view.
type CategoryRef struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}

// ProductView is a product joined with its brand and category.
type ProductView struct {
	Product
	Brand    BrandRef    `json:"brand"`
	Category CategoryRef `json:"category"`
}

// OrderUser is the owner identity embedded in an order view.
type OrderUser struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// OrderLine is one line item of an order view.
type OrderLine struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

// OrderView is an order joined with its owner and line items.
// Products are ordered by product identifier ascending.
type OrderView struct {
	OrderID   int64       `json:"orderId"`
	UserID    int64       `json:"userId"`
	OrderDate time.Time   `json:"orderDate"`
	User      OrderUser   `json:"user"`
	Products  []OrderLine `json:"products"`
}

// NewProductView assembles the denormalized product shape.
func NewProductView(p Product, b Brand, c Category) ProductView {
	return ProductView{
		Product:  p,
		Brand:    BrandRef{BrandID: b.BrandID, Name: b.Name, Country: b.Country},
		Category: CategoryRef{CategoryID: c.CategoryID, Name: c.Name},
	}
}
