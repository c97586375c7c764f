package comment

import (
	"errors"
	"fmt"
	"strings"

	goaway "github.com/TwiN/go-away"
	"github.com/crafthub/crafthub-backend/internal/metrics"
	"github.com/crafthub/crafthub-backend/internal/models"
	"github.com/crafthub/crafthub-backend/internal/render"
	"github.com/crafthub/crafthub-backend/internal/repositories"
	"github.com/crafthub/crafthub-backend/internal/services/notify"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrEmptyAuthor = errors.New("comment author must not be empty")
	ErrEmptyText   = errors.New("comment text must not be empty")
	ErrProfanity   = errors.New("comment contains restricted language")
)

func ShutdownCommentService() error {
	return nil
}

// Validate applies the local-only checks that run before any store call.
// The trimmed values are returned so the caller stores what was checked.
func Validate(author string, text string) (string, string, error) {
	author = strings.TrimSpace(author)
	text = strings.TrimSpace(text)

	if author == "" {
		return "", "", ErrEmptyAuthor
	}
	if text == "" {
		return "", "", ErrEmptyText
	}

	if goaway.IsProfane(author) || goaway.IsProfane(text) {
		return "", "", ErrProfanity
	}

	return author, text, nil
}

// ListComments returns an item's comments newest first.
func ListComments(contentID primitive.ObjectID) ([]models.CommentSchema, error) {
	CommentModel, err := repositories.GetMongoClient().GetModel("Comment")
	if err != nil {
		return nil, err
	}

	comments := make([]models.CommentSchema, 0)

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	if err := CommentModel.FindAllWithOptions(&comments, bson.M{"contentId": contentID}, findOptions); err != nil {
		return nil, fmt.Errorf("error finding comments with error: %s", err.Error())
	}

	return comments, nil
}

// PostComment stores a validated visitor comment. The body is reduced to
// plain text before it is persisted.
func PostComment(contentID primitive.ObjectID, author string, text string) (*models.CommentSchema, error) {
	author, text, err := Validate(author, text)
	if err != nil {
		return nil, err
	}

	ContentModel, err := repositories.GetMongoClient().GetModel("Content")
	if err != nil {
		return nil, err
	}

	CommentModel, err := repositories.GetMongoClient().GetModel("Comment")
	if err != nil {
		return nil, err
	}

	theContent := &models.ContentSchema{}
	if err := ContentModel.FindOneById(theContent, contentID); err != nil {
		return nil, fmt.Errorf("error finding content with error: %s", err.Error())
	}

	newComment := models.NewComment(contentID, author, render.CommentText(text))

	if err := CommentModel.Create(newComment); err != nil {
		return nil, fmt.Errorf("error creating comment with error: %s", err.Error())
	}

	metrics.CommentsTotal.Inc()

	notify.PublishEvent(models.EventTypeCommentPosted, map[string]interface{}{
		"content": theContent.Title,
		"author":  newComment.Author,
	})

	return newComment, nil
}

// DeleteComment removes a comment. The admin gate lives in the middleware;
// this is the store side only.
func DeleteComment(commentID primitive.ObjectID) error {
	CommentModel, err := repositories.GetMongoClient().GetModel("Comment")
	if err != nil {
		return err
	}

	theComment := &models.CommentSchema{}
	if err := CommentModel.FindOneById(theComment, commentID); err != nil {
		return fmt.Errorf("error finding comment with error: %s", err.Error())
	}

	if err := CommentModel.DeleteById(commentID); err != nil {
		return fmt.Errorf("error deleting comment with error: %s", err.Error())
	}

	return nil
}
