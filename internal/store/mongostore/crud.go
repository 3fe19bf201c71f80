package mongostore

import (
	"context"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// crud implements store.Repository over one collection. Documents carry the
// integer identifier in _id, allocated from the counters collection.
type crud[T any] struct {
	db     *mongo.Database
	coll   *mongo.Collection
	entity string
	setID  func(*T, int64)
}

func newCrud[T any](db *mongo.Database, collection, entity string, setID func(*T, int64)) *crud[T] {
	return &crud[T]{db: db, coll: db.Collection(collection), entity: entity, setID: setID}
}

func (r *crud[T]) find(ctx context.Context, filter interface{}) ([]T, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storageError(err)
	}
	rows := make([]T, 0)
	if err := cur.All(ctx, &rows); err != nil {
		return nil, storageError(err)
	}
	return rows, nil
}

func (r *crud[T]) List(ctx context.Context) ([]T, error) {
	return r.find(ctx, bson.D{})
}

func (r *crud[T]) Get(ctx context.Context, id int64) (*T, error) {
	var row T
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&row); err != nil {
		return nil, translate(err, r.entity, id)
	}
	return &row, nil
}

func (r *crud[T]) Create(ctx context.Context, row *T) error {
	id, err := nextID(ctx, r.db, r.coll.Name())
	if err != nil {
		return storageError(err)
	}
	r.setID(row, id)
	if _, err := r.coll.InsertOne(ctx, row); err != nil {
		return storageError(err)
	}
	return nil
}

func (r *crud[T]) Update(ctx context.Context, id int64, patch models.Patch[T]) (*T, error) {
	row, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(row)

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, row)
	if err != nil {
		return nil, storageError(err)
	}
	if res.MatchedCount == 0 {
		return nil, types.NotFound("%s %d not found", r.entity, id)
	}
	return row, nil
}

func (r *crud[T]) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storageError(err)
	}
	if res.DeletedCount == 0 {
		return types.NotFound("%s %d not found", r.entity, id)
	}
	return nil
}
