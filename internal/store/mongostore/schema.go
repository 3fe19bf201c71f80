package mongostore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collRoles             = "roles"
	collUsers             = "users"
	collBrands            = "brands"
	collCategories        = "categories"
	collProducts          = "products"
	collEvents            = "events"
	collEventParticipants = "event_participants"
	collOrders            = "orders"
	collOrderProducts     = "order_products"
	collMessages          = "messages"
	collVisits            = "visits"
)

var (
	idType    = bson.A{"long", "int"}
	moneyType = bson.A{"decimal", "double", "int", "long"}
)

func object(required []string, properties bson.M) bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType":   "object",
		"required":   required,
		"properties": properties,
	}}
}

// validators are the $jsonSchema rules applied to each collection.
var validators = map[string]bson.M{
	collRoles: object([]string{"_id", "name"}, bson.M{
		"_id":  bson.M{"bsonType": idType},
		"name": bson.M{"bsonType": "string"},
	}),
	collUsers: object([]string{"_id", "roleId", "firstName", "lastName", "email", "phoneNumber", "passwordHash"}, bson.M{
		"_id":          bson.M{"bsonType": idType},
		"roleId":       bson.M{"bsonType": idType},
		"firstName":    bson.M{"bsonType": "string"},
		"lastName":     bson.M{"bsonType": "string"},
		"email":        bson.M{"bsonType": "string"},
		"phoneNumber":  bson.M{"bsonType": "string"},
		"passwordHash": bson.M{"bsonType": "string"},
	}),
	collBrands: object([]string{"_id", "name", "country"}, bson.M{
		"_id":     bson.M{"bsonType": idType},
		"name":    bson.M{"bsonType": "string"},
		"country": bson.M{"bsonType": "string"},
	}),
	collCategories: object([]string{"_id", "name"}, bson.M{
		"_id":  bson.M{"bsonType": idType},
		"name": bson.M{"bsonType": "string"},
	}),
	collProducts: object([]string{"_id", "brandId", "categoryId", "name", "description", "price", "quantityAvailable"}, bson.M{
		"_id":               bson.M{"bsonType": idType},
		"brandId":           bson.M{"bsonType": idType},
		"categoryId":        bson.M{"bsonType": idType},
		"name":              bson.M{"bsonType": "string"},
		"description":       bson.M{"bsonType": "string"},
		"price":             bson.M{"bsonType": moneyType, "minimum": 0},
		"quantityAvailable": bson.M{"bsonType": idType, "minimum": 0},
	}),
	collEvents: object([]string{"_id", "name", "description", "date"}, bson.M{
		"_id":         bson.M{"bsonType": idType},
		"name":        bson.M{"bsonType": "string"},
		"description": bson.M{"bsonType": "string"},
		"date":        bson.M{"bsonType": "date"},
	}),
	collEventParticipants: object([]string{"_id", "eventId", "userId"}, bson.M{
		"_id":     bson.M{"bsonType": idType},
		"eventId": bson.M{"bsonType": idType},
		"userId":  bson.M{"bsonType": idType},
	}),
	collOrders: object([]string{"_id", "userId", "orderDate"}, bson.M{
		"_id":       bson.M{"bsonType": idType},
		"userId":    bson.M{"bsonType": idType},
		"orderDate": bson.M{"bsonType": "date"},
	}),
	collOrderProducts: object([]string{"_id", "orderId", "productId", "quantity"}, bson.M{
		"_id":       bson.M{"bsonType": idType},
		"orderId":   bson.M{"bsonType": idType},
		"productId": bson.M{"bsonType": idType},
		"quantity":  bson.M{"bsonType": idType, "minimum": 1},
	}),
	collMessages: object([]string{"_id", "senderId", "recipientId", "date", "content"}, bson.M{
		"_id":         bson.M{"bsonType": idType},
		"senderId":    bson.M{"bsonType": idType},
		"recipientId": bson.M{"bsonType": idType},
		"date":        bson.M{"bsonType": "date"},
		"content":     bson.M{"bsonType": "string"},
	}),
	collVisits: object([]string{"_id", "visitorId", "expertId", "date"}, bson.M{
		"_id":       bson.M{"bsonType": idType},
		"visitorId": bson.M{"bsonType": idType},
		"expertId":  bson.M{"bsonType": idType},
		"date":      bson.M{"bsonType": "date"},
		"note":      bson.M{"bsonType": "string"},
	}),
}

var indexes = map[string][]mongo.IndexModel{
	collRoles: {
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	collUsers: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	collProducts: {
		{Keys: bson.D{{Key: "brandId", Value: 1}}},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
	},
	collEventParticipants: {
		{Keys: bson.D{{Key: "eventId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	},
	collOrders: {
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	},
	collOrderProducts: {
		{Keys: bson.D{{Key: "orderId", Value: 1}, {Key: "productId", Value: 1}}},
	},
	collMessages: {
		{Keys: bson.D{{Key: "senderId", Value: 1}}},
		{Keys: bson.D{{Key: "recipientId", Value: 1}}},
	},
	collVisits: {
		{Keys: bson.D{{Key: "visitorId", Value: 1}}},
		{Keys: bson.D{{Key: "expertId", Value: 1}}},
	},
}

// EnsureSchema creates every collection with its validator, refreshes the
// validator of existing collections and builds the indexes. Collections must
// exist before the first multi-document transaction touches them.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return errors.Wrap(err, "list collections")
	}
	existing := make(map[string]bool, len(names))
	for _, n := range names {
		existing[n] = true
	}

	if !existing[collCounters] {
		if err := db.CreateCollection(ctx, collCounters); err != nil {
			return errors.Wrapf(err, "create collection %s", collCounters)
		}
	}

	for name, validator := range validators {
		if existing[name] {
			cmd := bson.D{{Key: "collMod", Value: name}, {Key: "validator", Value: validator}}
			if err := db.RunCommand(ctx, cmd).Err(); err != nil {
				return errors.Wrapf(err, "update validator of %s", name)
			}
			continue
		}
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return errors.Wrapf(err, "create collection %s", name)
		}
		logrus.WithField("collection", name).Debug("created collection")
	}

	for name, ims := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, ims); err != nil {
			return errors.Wrapf(err, "create indexes on %s", name)
		}
	}
	return nil
}
