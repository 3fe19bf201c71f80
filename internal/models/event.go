package models

import (
	"time"

	"github.com/localnerve/shopdb/internal/types"
	"gorm.io/datatypes"
)

// Event is something users can join.
type Event struct {
	EventID     int64          `gorm:"primaryKey;autoIncrement" json:"eventId" bson:"_id"`
	Name        string         `gorm:"size:255;not null" json:"name" bson:"name"`
	Description string         `gorm:"size:2000;not null" json:"description" bson:"description"`
	Date        datatypes.Date `gorm:"not null" json:"date" bson:"date"`
}

// EventParticipant associates a user with an event. The pair is not unique:
// joining twice records two participations.
type EventParticipant struct {
	EventParticipantID int64 `gorm:"primaryKey;autoIncrement" json:"eventParticipantId" bson:"_id"`
	EventID            int64 `gorm:"not null;index" json:"eventId" bson:"eventId"`
	UserID             int64 `gorm:"not null;index" json:"userId" bson:"userId"`
}

// TableName overrides the table name for Event
func (Event) TableName() string {
	return "events"
}

// TableName overrides the table name for EventParticipant
func (EventParticipant) TableName() string {
	return "event_participants"
}

// EventPatch is the partial form of Event.
type EventPatch struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Date        *types.FlexTime `json:"date"`
}

func (p EventPatch) Apply(row *Event) {
	mergeString(&row.Name, p.Name)
	mergeString(&row.Description, p.Description)
	if p.Date != nil {
		row.Date = datatypes.Date(p.Date.Time())
	}
}

func (p EventPatch) Validate(create bool) error {
	if create {
		return firstMissing(
			field("name", !blank(p.Name)),
			field("description", !blank(p.Description)),
			field("date", p.Date != nil && !p.Date.Time().IsZero()),
		)
	}
	return nil
}

// EventDate converts a wall time to the stored date.
func EventDate(t time.Time) datatypes.Date {
	return datatypes.Date(t)
}
