package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentSchema is a visitor comment on a catalog entry. Author is a free
// text display name, not an authenticated identity. Comments are never
// edited, only created and (admin-only) deleted.
type CommentSchema struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	ContentID primitive.ObjectID `json:"contentId" bson:"contentId"`
	Author    string             `json:"author" bson:"author"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

func NewComment(contentID primitive.ObjectID, author string, text string) *CommentSchema {
	return &CommentSchema{
		ID:        primitive.NewObjectID(),
		ContentID: contentID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
