package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/crafthub/crafthub-backend/internal/utils/config"
	"github.com/redis/go-redis/v9"
)

const (
	keyDownloadStats  = "dl:stats" // HASH. content id -> download counter.
	keyUniqueDownload = "dl:uniq"  // STRING per visitor, SETNX with TTL.

	uniqueDownloadExpiration = 24 * time.Hour
)

var (
	redisClient *redis.Client
)

// InitTelemetryRepository connects the best-effort download telemetry store.
// Mongo remains authoritative for the download counter; Redis only feeds the
// hot stats and repeat-download dedup.
func InitTelemetryRepository() error {
	configData, err := config.GetConfigData()
	if err != nil {
		return err
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr: configData.Redis.Addr,
		DB:   configData.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("error connecting to redis with error: %s", err.Error())
	}

	return nil
}

func IncDownloadStat(ctx context.Context, contentID string) (int64, error) {
	if redisClient == nil {
		return 0, fmt.Errorf("telemetry store is not connected")
	}

	counter, err := redisClient.HIncrBy(ctx, keyDownloadStats, contentID, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("cannot increment download stat for %s: %w", contentID, err)
	}

	return counter, nil
}

// SeenDownloader records the visitor fingerprint and reports whether it was
// already present inside the dedup window.
func SeenDownloader(ctx context.Context, fingerprint string) (bool, error) {
	if redisClient == nil {
		return false, fmt.Errorf("telemetry store is not connected")
	}

	res, err := redisClient.SetNX(ctx, keyUniqueDownload+":"+fingerprint, "1", uniqueDownloadExpiration).Result()
	if err != nil {
		return false, fmt.Errorf("cannot check downloader fingerprint: %w", err)
	}

	return !res, nil
}

func CloseTelemetryRepository() error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Close()
}
