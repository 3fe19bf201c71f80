// orders.go
//
// Document order assembly and creation
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

package mongostore

import (
	"context"
	"time"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type orderRepo struct {
	client *mongo.Client
	db     *mongo.Database
}

type orderDoc struct {
	models.Order `bson:",inline"`
	User         struct {
		UserID int64  `bson:"_id"`
		Email  string `bson:"email"`
	} `bson:"user"`
}

type orderLineDoc struct {
	OrderID   int64 `bson:"orderId"`
	ProductID int64 `bson:"productId"`
	Quantity  int64 `bson:"quantity"`
	Product   struct {
		Name string `bson:"name"`
	} `bson:"product"`
}

func scopeFilter(scope models.OrderScope, id *int64) bson.M {
	filter := bson.M{}
	if id != nil {
		filter["_id"] = *id
	}
	if !scope.All {
		filter["userId"] = scope.UserID
	}
	return filter
}

// assemble reads the headers joined with their owner, then every line of
// those orders joined with the product name, grouped by order in Go.
func (r *orderRepo) assemble(ctx context.Context, scope models.OrderScope, id *int64) ([]models.OrderView, error) {
	headers := mongo.Pipeline{
		{{Key: "$match", Value: scopeFilter(scope, id)}},
		{{Key: "$lookup", Value: bson.M{"from": collUsers, "localField": "userId", "foreignField": "_id", "as": "user"}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cur, err := r.db.Collection(collOrders).Aggregate(ctx, headers)
	if err != nil {
		return nil, storageError(err)
	}
	var orders []orderDoc
	if err := cur.All(ctx, &orders); err != nil {
		return nil, storageError(err)
	}
	if len(orders) == 0 {
		return []models.OrderView{}, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	lines := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"orderId": bson.M{"$in": ids}}}},
		{{Key: "$lookup", Value: bson.M{"from": collProducts, "localField": "productId", "foreignField": "_id", "as": "product"}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$sort", Value: bson.D{{Key: "orderId", Value: 1}, {Key: "productId", Value: 1}, {Key: "_id", Value: 1}}}},
	}
	cur, err = r.db.Collection(collOrderProducts).Aggregate(ctx, lines)
	if err != nil {
		return nil, storageError(err)
	}
	var lineDocs []orderLineDoc
	if err := cur.All(ctx, &lineDocs); err != nil {
		return nil, storageError(err)
	}

	byOrder := make(map[int64][]models.OrderLine, len(orders))
	for _, l := range lineDocs {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], models.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
		})
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		products := byOrder[o.OrderID]
		if products == nil {
			products = []models.OrderLine{}
		}
		views = append(views, models.OrderView{
			OrderID:   o.OrderID,
			UserID:    o.UserID,
			OrderDate: o.OrderDate,
			User:      models.OrderUser{UserID: o.User.UserID, Email: o.User.Email},
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

// Create runs in a multi-document transaction, which needs a replica set.
func (r *orderRepo) Create(ctx context.Context, userID int64, lines []models.LineItem) (*models.OrderView, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, storageError(err)
	}
	defer session.EndSession(ctx)

	products := r.db.Collection(collProducts)
	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		names := make(map[int64]string, len(lines))
		for _, line := range lines {
			var product models.Product
			if err := products.FindOne(sc, bson.M{"_id": line.ProductID}).Decode(&product); err != nil {
				return nil, translate(err, "Product", line.ProductID)
			}
			if product.QuantityAvailable < line.Quantity {
				return nil, types.InsufficientStock(product.Name)
			}
			names[product.ProductID] = product.Name
		}

		orderID, err := nextID(sc, r.db, collOrders)
		if err != nil {
			return nil, err
		}
		order := models.Order{OrderID: orderID, UserID: userID, OrderDate: time.Now().UTC().Truncate(time.Millisecond)}
		if _, err := r.db.Collection(collOrders).InsertOne(sc, order); err != nil {
			return nil, err
		}

		for _, line := range lines {
			lineID, err := nextID(sc, r.db, collOrderProducts)
			if err != nil {
				return nil, err
			}
			item := models.OrderProduct{OrderProductID: lineID, OrderID: orderID, ProductID: line.ProductID, Quantity: line.Quantity}
			if _, err := r.db.Collection(collOrderProducts).InsertOne(sc, item); err != nil {
				return nil, err
			}

			res, err := products.UpdateOne(sc,
				bson.M{"_id": line.ProductID, "quantityAvailable": bson.M{"$gte": line.Quantity}},
				bson.M{"$inc": bson.M{"quantityAvailable": -line.Quantity}},
			)
			if err != nil {
				return nil, err
			}
			if res.ModifiedCount == 0 {
				return nil, types.InsufficientStock(names[line.ProductID])
			}
		}
		return orderID, nil
	})
	if err != nil {
		return nil, storageError(err)
	}
	return r.Get(ctx, result.(int64), models.OrderScope{All: true})
}
