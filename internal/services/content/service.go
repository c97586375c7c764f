package content

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/crafthub/crafthub-backend/internal/metrics"
	"github.com/crafthub/crafthub-backend/internal/models"
	"github.com/crafthub/crafthub-backend/internal/repositories"
	"github.com/crafthub/crafthub-backend/internal/services/notify"
	"github.com/crafthub/crafthub-backend/internal/services/storage"
	"github.com/crafthub/crafthub-backend/internal/types"
	"github.com/crafthub/crafthub-backend/internal/utils/config"
	"github.com/crafthub/crafthub-backend/internal/utils/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNoFileAttached = errors.New("content has no file attached")
	ErrInvalidStar    = errors.New("star must be between 1 and 5")
)

func InitContentService() {
	logger.GetDebugLogger().Println("Initialized Content Service")
}

func ShutdownContentService() error {
	return nil
}

// ListContent returns the whole catalog ordered by descending download count.
func ListContent() ([]models.ContentSchema, error) {
	ContentModel, err := repositories.GetMongoClient().GetModel("Content")
	if err != nil {
		return nil, err
	}

	items := make([]models.ContentSchema, 0)
	if err := ContentModel.FindAll(&items, bson.M{}); err != nil {
		return nil, fmt.Errorf("error finding content with error: %s", err.Error())
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Downloads > items[j].Downloads
	})

	return items, nil
}

// FilterByCategory is a pure predicate over an already-fetched list; it never
// touches the store. An empty or "all" category returns the list unchanged.
func FilterByCategory(items []models.ContentSchema, category string) []models.ContentSchema {
	if category == "" || category == models.CategoryAll {
		return items
	}

	filtered := make([]models.ContentSchema, 0)
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

func GetContent(contentID primitive.ObjectID) (*models.ContentSchema, error) {
	ContentModel, err := repositories.GetMongoClient().GetModel("Content")
	if err != nil {
		return nil, err
	}

	theContent := &models.ContentSchema{}
	if err := ContentModel.FindOneById(theContent, contentID); err != nil {
		return nil, fmt.Errorf("error finding content with error: %s", err.Error())
	}

	return theContent, nil
}

// CreateContent writes a new catalog record. When a file is attached the
// object upload happens first and a failed upload aborts the whole create.
func CreateContent(ctx context.Context, form types.ContentForm, fileIdentity *types.StorageFileIdentity) (*models.ContentSchema, error) {
	ContentModel, err := repositories.GetMongoClient().GetModel("Content")
	if err != nil {
		return nil, err
	}

	if !models.ValidCategory(form.Category) {
		return nil, fmt.Errorf("error invalid category (%s)", form.Category)
	}

	configData, err := config.GetConfigData()
	if err != nil {
		return nil, err
	}

	newContent := models.NewContent(form.Title, form.Category, configData.AuthorLabel, form.Description, form.Version, form.ImageURL)

	if fileIdentity != nil {
		fileURL, fileKey, fileSize, err := storage.UploadContent(ctx, *fileIdentity)
		if err != nil {
			return nil, fmt.Errorf("error uploading content file with error: %s", err.Error())
		}

		newContent.FileURL = fileURL
		newContent.FileKey = fileKey
		newContent.FileSize = fileSize
	}

	if err := ContentModel.Create(newContent); err != nil {
		return nil, fmt.Errorf("error creating content with error: %s", err.Error())
	}

	notify.PublishEvent(models.EventTypeContentPublished, map[string]interface{}{
		"title":    newContent.Title,
		"category": newContent.Category,
		"version":  newContent.Version,
	})

	return newContent, nil
}

// UpdateContent edits a record in place. A new file replaces the stored
// object reference; the upload-first rule applies as on create.
func UpdateContent(ctx context.Context, contentID primitive.ObjectID, form types.ContentForm, fileIdentity *types.StorageFileIdentity) (*models.ContentSchema, error) {
	ContentModel, err := repositories.GetMongoClient().GetModel("Content")
	if err != nil {
		return nil, err
	}

	if !models.ValidCategory(form.Category) {
		return nil, fmt.Errorf("error invalid category (%s)", form.Category)
	}

	theContent := &models.ContentSchema{}
	if err := ContentModel.FindOneById(theContent, contentID); err != nil {
		return nil, fmt.Errorf("error finding content with error: %s", err.Error())
	}

	updateData := bson.M{
		"title":       form.Title,
		"category":    form.Category,
		"description": form.Description,
		"version":     form.Version,
		"imageUrl":    form.ImageURL,
		"updatedAt":   time.Now(),
	}

	if fileIdentity != nil {
		oldKey := theContent.FileKey

		fileURL, fileKey, fileSize, err := storage.UploadContent(ctx, *fileIdentity)
		if err != nil {
			return nil, fmt.Errorf("error uploading content file with error: %s", err.Error())
		}

		updateData["fileUrl"] = fileURL
		updateData["fileKey"] = fileKey
		updateData["fileSize"] = fileSize

		if oldKey != "" && oldKey != fileKey {
			if err := repositories.DeleteContentFile(ctx, oldKey); err != nil {
				logger.GetWarnLogger().Printf("error removing replaced content file with error: %s", err.Error())
			}
		}
	}

	if err := ContentModel.UpdateData(theContent, updateData); err != nil {
		return nil, fmt.Errorf("error updating content with error: %s", err.Error())
	}

	notify.PublishEvent(models.EventTypeContentUpdated, map[string]interface{}{
		"title":   theContent.Title,
		"version": form.Version,
	})

	return GetContent(contentID)
}

// DeleteContent removes the record, its comments and (best-effort) the stored
// object. A failed record delete is an error: the item stays and the caller
// reports the failure instead of pretending it is gone.
func DeleteContent(ctx context.Context, contentID primitive.ObjectID) error {
	ContentModel, err := repositories.GetMongoClient().GetModel("Content")
	if err != nil {
		return err
	}

	CommentModel, err := repositories.GetMongoClient().GetModel("Comment")
	if err != nil {
		return err
	}

	theContent := &models.ContentSchema{}
	if err := ContentModel.FindOneById(theContent, contentID); err != nil {
		return fmt.Errorf("error finding content with error: %s", err.Error())
	}

	if theContent.FileKey != "" {
		if err := repositories.DeleteContentFile(ctx, theContent.FileKey); err != nil {
			logger.GetWarnLogger().Printf("error removing content file with error: %s", err.Error())
		}
	}

	if err := CommentModel.Delete(bson.M{"contentId": contentID}); err != nil {
		return fmt.Errorf("error deleting content comments with error: %s", err.Error())
	}

	if err := ContentModel.DeleteById(contentID); err != nil {
		return fmt.Errorf("error deleting content with error: %s", err.Error())
	}

	return nil
}

// NextRating folds one star vote into a running average kept to one decimal.
func NextRating(rating float64, ratingsCount int, star int) (float64, int) {
	newCount := ratingsCount + 1
	newAvg := (rating*float64(ratingsCount) + float64(star)) / float64(newCount)

	return math.Round(newAvg*10) / 10, newCount
}

// RateContent persists a 1-5 star vote. On store failure nothing changes;
// there is no optimistic update to roll back.
func RateContent(contentID primitive.ObjectID, star int) (*models.ContentSchema, error) {
	if star < 1 || star > 5 {
		return nil, ErrInvalidStar
	}

	ContentModel, err := repositories.GetMongoClient().GetModel("Content")
	if err != nil {
		return nil, err
	}

	theContent := &models.ContentSchema{}
	if err := ContentModel.FindOneById(theContent, contentID); err != nil {
		return nil, fmt.Errorf("error finding content with error: %s", err.Error())
	}

	newRating, newCount := NextRating(theContent.Rating, theContent.RatingsCount, star)

	updateData := bson.M{
		"rating":       newRating,
		"ratingsCount": newCount,
	}

	if err := ContentModel.UpdateData(theContent, updateData); err != nil {
		return nil, fmt.Errorf("error updating content rating with error: %s", err.Error())
	}

	metrics.RatingsTotal.Inc()

	theContent.Rating = newRating
	theContent.RatingsCount = newCount

	return theContent, nil
}

// RecordDownload bumps the authoritative counter and feeds the best-effort
// telemetry. The counter is telemetry, not a gate: the download itself must
// proceed even when every increment here fails.
func RecordDownload(ctx context.Context, theContent *models.ContentSchema, fingerprint string) {
	ContentModel, err := repositories.GetMongoClient().GetModel("Content")
	if err != nil {
		logger.GetErrorLogger().Printf("error getting content model with error: %s", err.Error())
		return
	}

	if err := ContentModel.RawUpdateData(theContent, bson.M{"$inc": bson.M{"downloads": 1}}); err != nil {
		logger.GetErrorLogger().Printf("error incrementing download counter with error: %s", err.Error())
	}

	if _, err := repositories.IncDownloadStat(ctx, theContent.ID.Hex()); err != nil {
		logger.GetWarnLogger().Printf("download telemetry unavailable: %s", err.Error())
	}

	if fingerprint != "" {
		if seen, err := repositories.SeenDownloader(ctx, fingerprint); err == nil && seen {
			logger.GetDebugLogger().Printf("repeat download of %s", theContent.ID.Hex())
		}
	}

	metrics.DownloadsTotal.Inc()
}
