package mongostore

import (
	"context"

	"github.com/localnerve/shopdb/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

type messageRepo struct {
	*crud[models.Message]
}

func (r *messageRepo) ListForUser(ctx context.Context, userID int64) ([]models.Message, error) {
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"senderId": userID},
		bson.M{"recipientId": userID},
	}})
}

type visitRepo struct {
	*crud[models.Visit]
}

func (r *visitRepo) ListForUser(ctx context.Context, userID int64) ([]models.Visit, error) {
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"visitorId": userID},
		bson.M{"expertId": userID},
	}})
}
