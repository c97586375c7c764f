package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionSchema struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	UserID primitive.ObjectID `json:"userId" bson:"userId"`
	Expiry time.Time          `json:"expiry" bson:"expiry"`
}

func NewSession(userID primitive.ObjectID, expiry time.Time) *SessionSchema {
	return &SessionSchema{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Expiry: expiry,
	}
}

func (session *SessionSchema) Expired() bool {
	return time.Now().After(session.Expiry)
}
