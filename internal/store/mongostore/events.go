package mongostore

import (
	"context"

	"github.com/localnerve/shopdb/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type eventRepo struct {
	*crud[models.Event]
	participants *mongo.Collection
}

func (r *eventRepo) Join(ctx context.Context, eventID, userID int64) (*models.Event, *models.EventParticipant, error) {
	event, err := r.Get(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	id, err := nextID(ctx, r.db, collEventParticipants)
	if err != nil {
		return nil, nil, storageError(err)
	}
	participant := models.EventParticipant{EventParticipantID: id, EventID: eventID, UserID: userID}
	if _, err := r.participants.InsertOne(ctx, participant); err != nil {
		return nil, nil, storageError(err)
	}
	return event, &participant, nil
}

// ListForUser groups the user's participations by event so each event appears once.
func (r *eventRepo) ListForUser(ctx context.Context, userID int64) ([]models.Event, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$eventId"}}},
		{{Key: "$lookup", Value: bson.M{"from": collEvents, "localField": "_id", "foreignField": "_id", "as": "event"}}},
		{{Key: "$unwind", Value: "$event"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$event"}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cur, err := r.participants.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storageError(err)
	}
	events := make([]models.Event, 0)
	if err := cur.All(ctx, &events); err != nil {
		return nil, storageError(err)
	}
	return events, nil
}

func (r *eventRepo) Participants(ctx context.Context, eventID int64) ([]models.EventParticipant, error) {
	cur, err := r.participants.Find(ctx, bson.M{"eventId": eventID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storageError(err)
	}
	rows := make([]models.EventParticipant, 0)
	if err := cur.All(ctx, &rows); err != nil {
		return nil, storageError(err)
	}
	return rows, nil
}
