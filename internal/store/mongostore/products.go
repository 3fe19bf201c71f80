package mongostore

import (
	"context"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type productRepo struct {
	*crud[models.Product]
}

type productDoc struct {
	models.Product `bson:",inline"`
	Brand          models.Brand    `bson:"brand"`
	Category       models.Category `bson:"category"`
}

// detailedPipeline joins brand and category. $unwind drops products missing either.
func detailedPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{"from": collBrands, "localField": "brandId", "foreignField": "_id", "as": "brand"}}},
		{{Key: "$unwind", Value: "$brand"}},
		{{Key: "$lookup", Value: bson.M{"from": collCategories, "localField": "categoryId", "foreignField": "_id", "as": "category"}}},
		{{Key: "$unwind", Value: "$category"}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

func (r *productRepo) detailed(ctx context.Context, match bson.M) ([]models.ProductView, error) {
	cur, err := r.coll.Aggregate(ctx, detailedPipeline(match))
	if err != nil {
		return nil, storageError(err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageError(err)
	}

	views := make([]models.ProductView, 0, len(docs))
	for _, d := range docs {
		views = append(views, models.NewProductView(d.Product, d.Brand, d.Category))
	}
	return views, nil
}

func (r *productRepo) ListDetailed(ctx context.Context) ([]models.ProductView, error) {
	return r.detailed(ctx, bson.M{})
}

func (r *productRepo) GetDetailed(ctx context.Context, id int64) (*models.ProductView, error) {
	views, err := r.detailed(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, types.NotFound("Product %d not found", id)
	}
	return &views[0], nil
}
