package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventTypeContentPublished = "content.published"
	EventTypeContentUpdated   = "content.updated"
	EventTypeCommentPosted    = "comment.posted"

	EventStatusPending    = "pending"
	EventStatusProcessing = "processing"
	EventStatusSent       = "sent"
	EventStatusFailed     = "failed"
)

// EventSchema is a queued outbound notification. Events are claimed with a
// lease by the notify worker and posted to the configured Discord webhook.
type EventSchema struct {
	ID      primitive.ObjectID     `json:"_id" bson:"_id"`
	Type    string                 `json:"type" bson:"type"`
	Payload map[string]interface{} `json:"payload" bson:"payload"`

	Status        string    `json:"status" bson:"status"`
	Attempts      int       `json:"attempts" bson:"attempts"`
	NextAttemptAt time.Time `json:"next_attempt_at" bson:"next_attempt_at"`

	ProcessingBy    string    `json:"processing_by,omitempty" bson:"processing_by,omitempty"`
	ProcessingUntil time.Time `json:"processing_until,omitempty" bson:"processing_until,omitempty"`

	Response     string `json:"response" bson:"response"`
	ResponseCode int    `json:"responseCode" bson:"responseCode"`
	LastError    string `json:"last_error" bson:"last_error"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	SentAt    time.Time `json:"sent_at,omitempty" bson:"sent_at,omitempty"`
}

func NewEvent(eventType string, payload map[string]interface{}) *EventSchema {
	return &EventSchema{
		ID:            primitive.NewObjectID(),
		Type:          eventType,
		Payload:       payload,
		Status:        EventStatusPending,
		NextAttemptAt: time.Now().UTC(),
		CreatedAt:     time.Now().UTC(),
	}
}
