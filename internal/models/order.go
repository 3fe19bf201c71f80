package models

import (
	"time"
)

// Order is the header of a purchase.
type Order struct {
	OrderID   int64     `gorm:"primaryKey;autoIncrement" json:"orderId" bson:"_id"`
	UserID    int64     `gorm:"not null;index" json:"userId" bson:"userId"`
	OrderDate time.Time `gorm:"not null" json:"orderDate" bson:"orderDate"`
}

// OrderProduct is one line item of an order. Quantity is strictly positive.
type OrderProduct struct {
	OrderProductID int64 `gorm:"primaryKey;autoIncrement" json:"orderProductId" bson:"_id"`
	OrderID        int64 `gorm:"not null;index" json:"orderId" bson:"orderId"`
	ProductID      int64 `gorm:"not null;index" json:"productId" bson:"productId"`
	Quantity       int64 `gorm:"not null" json:"quantity" bson:"quantity"`
}

// TableName overrides the table name for Order
func (Order) TableName() string {
	return "orders"
}

// TableName overrides the table name for OrderProduct
func (OrderProduct) TableName() string {
	return "order_products"
}

// LineItem is one (product, quantity) pair requested in a new order.
type LineItem struct {
	ProductID int64
	Quantity  int64
}

// OrderScope restricts order reads to one owner unless All is set.
type OrderScope struct {
	UserID int64
	All    bool
}

// ScopeFor derives the order visibility of a principal.
func ScopeFor(p *Principal) OrderScope {
	if p == nil {
		return OrderScope{}
	}
	return OrderScope{UserID: p.ID, All: p.IsAdmin()}
}
