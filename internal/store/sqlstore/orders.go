// orders.go
//
// Relational order assembly and creation
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of shopdb.
// shopdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// shopdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with shopdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package sqlstore

import (
	"context"
	"time"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

type orderRepo struct {
	db *gorm.DB
}

type orderHeaderRow struct {
	OrderID   int64
	UserID    int64
	OrderDate time.Time
	Email     string
}

type orderLineRow struct {
	OrderID   int64
	ProductID int64
	Name      string
	Quantity  int64
}

func scoped(q *gorm.DB, scope models.OrderScope, id *int64) *gorm.DB {
	if id != nil {
		q = q.Where("o.order_id = ?", *id)
	}
	if !scope.All {
		q = q.Where("o.user_id = ?", scope.UserID)
	}
	return q
}

// assemble reads order headers and their lines in two queries and groups the
// lines under their header. Lines are ordered by product id.
func (r *orderRepo) assemble(ctx context.Context, scope models.OrderScope, id *int64) ([]models.OrderView, error) {
	var headers []orderHeaderRow
	q := r.db.WithContext(ctx).
		Clauses(hints.Comment("select", "shopdb:orders.headers")).
		Table("orders o").
		Select("o.order_id, o.user_id, o.order_date, u.email").
		Joins("JOIN users u ON u.user_id = o.user_id")
	if err := scoped(q, scope, id).Order("o.order_id").Scan(&headers).Error; err != nil {
		return nil, storageError(err)
	}
	if len(headers) == 0 {
		return []models.OrderView{}, nil
	}

	var lines []orderLineRow
	q = r.db.WithContext(ctx).
		Clauses(hints.Comment("select", "shopdb:orders.lines")).
		Table("order_products op").
		Select("op.order_id, op.product_id, p.name, op.quantity").
		Joins("JOIN orders o ON o.order_id = op.order_id").
		Joins("JOIN products p ON p.product_id = op.product_id")
	err := scoped(q, scope, id).
		Order("op.order_id, op.product_id, op.order_product_id").
		Scan(&lines).Error
	if err != nil {
		return nil, storageError(err)
	}

	byOrder := make(map[int64][]models.OrderLine, len(headers))
	for _, l := range lines {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], models.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
		})
	}

	views := make([]models.OrderView, 0, len(headers))
	for _, h := range headers {
		products := byOrder[h.OrderID]
		if products == nil {
			products = []models.OrderLine{}
		}
		views = append(views, models.OrderView{
			OrderID:   h.OrderID,
			UserID:    h.UserID,
			OrderDate: h.OrderDate,
			User:      models.OrderUser{UserID: h.UserID, Email: h.Email},
			Products:  products,
		})
	}
	return views, nil
}

func (r *orderRepo) List(ctx context.Context, scope models.OrderScope) ([]models.OrderView, error) {
	return r.assemble(ctx, scope, nil)
}

func (r *orderRepo) Get(ctx context.Context, id int64, scope models.OrderScope) (*models.OrderView, error) {
	views, err := r.assemble(ctx, scope, &id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, types.NotFound("Order %d not found", id)
	}
	return &views[0], nil
}

func (r *orderRepo) Create(ctx context.Context, userID int64, lines []models.LineItem) (*models.OrderView, error) {
	var orderID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		names := make(map[int64]string, len(lines))
		for _, line := range lines {
			var product models.Product
			err := forUpdate(tx, models.Product{}.TableName()).First(&product, line.ProductID).Error
			if err != nil {
				return translate(err, "Product", line.ProductID)
			}
			if product.QuantityAvailable < line.Quantity {
				return types.InsufficientStock(product.Name)
			}
			names[product.ProductID] = product.Name
		}

		order := models.Order{UserID: userID, OrderDate: time.Now().UTC()}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			item := models.OrderProduct{OrderID: order.OrderID, ProductID: line.ProductID, Quantity: line.Quantity}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			// Repeated lines for one product are caught here.
			result := tx.Model(&models.Product{}).
				Where("product_id = ? AND quantity_available >= ?", line.ProductID, line.Quantity).
				UpdateColumn("quantity_available", gorm.Expr("quantity_available - ?", line.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return types.InsufficientStock(names[line.ProductID])
			}
		}

		orderID = order.OrderID
		return nil
	})
	if err != nil {
		return nil, storageError(err)
	}
	return r.Get(ctx, orderID, models.OrderScope{All: true})
}
