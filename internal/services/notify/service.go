package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/crafthub/crafthub-backend/internal/models"
	"github.com/crafthub/crafthub-backend/internal/repositories"
	"github.com/crafthub/crafthub-backend/internal/utils/logger"
	"github.com/gtuk/discordwebhook"
	"github.com/mrhid6/go-mongoose-lock/joblock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	processEventsJob *joblock.JobLockTask
	leaseTime        = 30 * time.Second
	maxAttempts      = 5
	podName, _       = os.Hostname()

	webhookURL string
)

func InitNotifyService() {
	webhookURL = os.Getenv("NOTIFY_DISCORD_WEBHOOK")
	if webhookURL == "" {
		logger.GetWarnLogger().Println("NOTIFY_DISCORD_WEBHOOK is not set, notifications disabled")
		return
	}

	processEventsJob, _ = joblock.NewJobLockTask(
		repositories.GetMongoClient(),
		"processNotifyEventsJob", func() {
			if err := processPendingEvents(); err != nil {
				logger.GetErrorLogger().Printf("error processing notify events with error: %s", err.Error())
			}
		},
		30*time.Second,
		10*time.Second,
		false,
	)

	ctx := context.Background()

	if err := processEventsJob.Run(ctx); err != nil {
		logger.GetErrorLogger().Printf("%v\n", err.Error())
	}

	logger.GetDebugLogger().Println("Initialized Notify Service")
}

func ShutdownNotifyService() error {
	if processEventsJob != nil {
		processEventsJob.UnLock(context.TODO())
	}

	logger.GetDebugLogger().Println("Shutdown Notify Service")
	return nil
}

// PublishEvent queues an outbound notification. Queueing failures are logged
// and swallowed: notifications never block the action that caused them.
func PublishEvent(eventType string, payload map[string]interface{}) {
	if webhookURL == "" {
		return
	}

	EventModel, err := repositories.GetMongoClient().GetModel("Event")
	if err != nil {
		logger.GetErrorLogger().Printf("error getting event model with error: %s", err.Error())
		return
	}

	if err := EventModel.Create(models.NewEvent(eventType, payload)); err != nil {
		logger.GetErrorLogger().Printf("error queueing notify event with error: %s", err.Error())
	}
}

func processPendingEvents() error {
	ev, err := claimEvent()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := sendEvent(ev); err != nil {
		markFailed(ev, err)
	} else {
		markSent(ev)
	}
	return nil
}

func claimEvent() (*models.EventSchema, error) {
	EventModel, err := repositories.GetMongoClient().GetModel("Event")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	leaseUntil := now.Add(leaseTime)
	filter := bson.M{
		"status":          models.EventStatusPending,
		"next_attempt_at": bson.M{"$lte": now},
		"$or": []bson.M{
			{"processing_until": bson.M{"$exists": false}},
			{"processing_until": bson.M{"$lte": now}},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"status":           models.EventStatusProcessing,
			"processing_by":    podName,
			"processing_until": leaseUntil,
		},
		"$inc": bson.M{"attempts": 1},
	}

	ev := &models.EventSchema{}

	if err := EventModel.FindOneAndUpdate(ev, filter, update); err != nil {
		return nil, err
	}
	return ev, nil
}

func sendEvent(ev *models.EventSchema) error {
	message := BuildDiscordMessage(ev)

	if err := discordwebhook.SendMessage(webhookURL, *message); err != nil {
		return fmt.Errorf("error sending discord webhook with error: %s", err.Error())
	}

	ev.ResponseCode = 204
	return nil
}

func BuildDiscordMessage(ev *models.EventSchema) *discordwebhook.Message {
	username := "CraftHub"
	eventName := "CraftHub Event"
	fields := make([]discordwebhook.Field, 0)

	for key, value := range ev.Payload {
		inline := true
		val := fmt.Sprintf("%v", value)
		fields = append(fields, discordwebhook.Field{Name: &key, Value: &val, Inline: &inline})
	}

	switch ev.Type {
	case models.EventTypeContentPublished:
		eventName = "New Content Published"
	case models.EventTypeContentUpdated:
		eventName = "Content Updated"
	case models.EventTypeCommentPosted:
		eventName = "New Comment"
	}

	embed := discordwebhook.Embed{
		Title:  &eventName,
		Fields: &fields,
	}

	message := &discordwebhook.Message{
		Username: &username,
		Embeds:   &[]discordwebhook.Embed{embed},
	}
	return message
}

func markSent(ev *models.EventSchema) {
	EventModel, err := repositories.GetMongoClient().GetModel("Event")
	if err != nil {
		logger.GetErrorLogger().Printf("markSent error: %v", err)
		return
	}

	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"status":       models.EventStatusSent,
			"responseCode": ev.ResponseCode,
			"sent_at":      now,
			"last_error":   "",
		},
		"$unset": bson.M{"processing_by": "", "processing_until": ""},
	}

	if err := EventModel.RawUpdateData(ev, update); err != nil {
		logger.GetErrorLogger().Printf("markSent error: %v", err)
	}
}

func markFailed(ev *models.EventSchema, sendErr error) {
	EventModel, err := repositories.GetMongoClient().GetModel("Event")
	if err != nil {
		logger.GetErrorLogger().Printf("markFailed error: %v", err)
		return
	}

	nextDelay := time.Duration(ev.Attempts*ev.Attempts) * time.Second // exponential backoff
	if nextDelay > 2*time.Minute {
		nextDelay = 2 * time.Minute
	}
	nextTime := time.Now().Add(nextDelay)

	status := models.EventStatusPending
	if ev.Attempts >= maxAttempts {
		status = models.EventStatusFailed
	}

	update := bson.M{
		"$set": bson.M{
			"status":          status,
			"last_error":      sendErr.Error(),
			"next_attempt_at": nextTime,
		},
		"$unset": bson.M{"processing_by": "", "processing_until": ""},
	}

	if err := EventModel.RawUpdateData(ev, update); err != nil {
		logger.GetErrorLogger().Printf("markFailed update error: %v", err)
	}
}
