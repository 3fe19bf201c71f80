package models

import (
	"time"

	"github.com/localnerve/shopdb/internal/types"
)

// Message is a note from one user to another.
type Message struct {
	MessageID   int64     `gorm:"primaryKey;autoIncrement" json:"messageId" bson:"_id"`
	SenderID    int64     `gorm:"not null;index" json:"senderId" bson:"senderId"`
	RecipientID int64     `gorm:"not null;index" json:"recipientId" bson:"recipientId"`
	Date        time.Time `gorm:"not null" json:"date" bson:"date"`
	Content     string    `gorm:"size:4000;not null" json:"content" bson:"content"`
}

// Visit is an appointment between a visitor and an expert.
type Visit struct {
	VisitID   int64     `gorm:"primaryKey;autoIncrement" json:"visitId" bson:"_id"`
	VisitorID int64     `gorm:"not null;index" json:"visitorId" bson:"visitorId"`
	ExpertID  int64     `gorm:"not null;index" json:"expertId" bson:"expertId"`
	Date      time.Time `gorm:"not null" json:"date" bson:"date"`
	Note      string    `gorm:"size:4000" json:"note" bson:"note"`
}

// TableName overrides the table name for Message
func (Message) TableName() string {
	return "messages"
}

// TableName overrides the table name for Visit
func (Visit) TableName() string {
	return "visits"
}

// MessagePatch is the partial form of Message. The sender is the principal.
type MessagePatch struct {
	RecipientID *types.FlexInt64 `json:"recipientId"`
	Date        *types.FlexTime  `json:"date"`
	Content     *string          `json:"content"`
}

func (p MessagePatch) Apply(row *Message) {
	mergeInt64(&row.RecipientID, p.RecipientID)
	if p.Date != nil {
		row.Date = p.Date.Time()
	}
	mergeString(&row.Content, p.Content)
}

func (p MessagePatch) Validate(create bool) error {
	if create {
		return firstMissing(
			field("recipientId", p.RecipientID != nil),
			field("content", !blank(p.Content)),
		)
	}
	return nil
}

// VisitPatch is the partial form of Visit. The visitor is the principal.
type VisitPatch struct {
	ExpertID *types.FlexInt64 `json:"expertId"`
	Date     *types.FlexTime  `json:"date"`
	Note     *string          `json:"note"`
}

func (p VisitPatch) Apply(row *Visit) {
	mergeInt64(&row.ExpertID, p.ExpertID)
	if p.Date != nil {
		row.Date = p.Date.Time()
	}
	mergeString(&row.Note, p.Note)
}

func (p VisitPatch) Validate(create bool) error {
	if create {
		return firstMissing(
			field("expertId", p.ExpertID != nil),
			field("date", p.Date != nil && !p.Date.Time().IsZero()),
		)
	}
	return nil
}
