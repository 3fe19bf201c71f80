package sqlstore

import (
	"context"

	"github.com/localnerve/shopdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

type eventRepo struct {
	*crud[models.Event]
	db *gorm.DB
}

func (r *eventRepo) Join(ctx context.Context, eventID, userID int64) (*models.Event, *models.EventParticipant, error) {
	var event models.Event
	var participant models.EventParticipant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, eventID).Error; err != nil {
			return translate(err, "Event", eventID)
		}
		participant = models.EventParticipant{EventID: eventID, UserID: userID}
		return tx.Create(&participant).Error
	})
	if err != nil {
		return nil, nil, storageError(err)
	}
	return &event, &participant, nil
}

func (r *eventRepo) ListForUser(ctx context.Context, userID int64) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := r.db.WithContext(ctx).
		Clauses(hints.Comment("select", "shopdb:events.for_user")).
		Table("events e").
		Distinct("e.event_id", "e.name", "e.description", "e.date").
		Joins("JOIN event_participants ep ON ep.event_id = e.event_id").
		Where("ep.user_id = ?", userID).
		Order("e.event_id").
		Scan(&events).Error
	if err != nil {
		return nil, storageError(err)
	}
	return events, nil
}

func (r *eventRepo) Participants(ctx context.Context, eventID int64) ([]models.EventParticipant, error) {
	rows := make([]models.EventParticipant, 0)
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("event_participant_id").
		Find(&rows).Error
	if err != nil {
		return nil, storageError(err)
	}
	return rows, nil
}
