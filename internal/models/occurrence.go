package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Occurrence is one materialized firing of a reminder at a specific
// timestamp. Both flags start false and only ever move to true.
type Occurrence struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReminderID         primitive.ObjectID `bson:"reminder_id" json:"reminder_id"`
	Timestamp          time.Time          `bson:"timestamp" json:"timestamp"`
	IsAcknowledged     bool               `bson:"is_acknowledged" json:"is_acknowledged"`
	IsNotificationSent bool               `bson:"is_notification_sent" json:"is_notification_sent"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}

// OccurrenceWithReminder is an occurrence joined with its owning reminder,
// the shape returned by the time-window queries.
type OccurrenceWithReminder struct {
	Occurrence Occurrence `json:"occurrence"`
	Reminder   Reminder   `json:"reminder"`
}
