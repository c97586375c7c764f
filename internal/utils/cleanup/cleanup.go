package cleanup

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crafthub/crafthub-backend/internal/utils/logger"
)

type CleanupOperation func(ctx context.Context) error

// GracefulShutdown waits for SIGINT/SIGTERM, then runs every registered
// operation with a shared deadline. The returned channel closes once all
// operations have finished or the deadline expired.
func GracefulShutdown(ctx context.Context, timeout time.Duration, operations map[string]CleanupOperation) <-chan struct{} {
	wait := make(chan struct{})

	go func() {
		s := make(chan os.Signal, 1)
		signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
		<-s

		logger.GetInfoLogger().Println("shutting down")

		timeoutFunc := time.AfterFunc(timeout, func() {
			logger.GetErrorLogger().Printf("timeout %v has elapsed, force exit", timeout)
			os.Exit(0)
		})
		defer timeoutFunc.Stop()

		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		for key, op := range operations {
			if err := op(shutdownCtx); err != nil {
				logger.GetErrorLogger().Printf("error cleaning up %s with error: %s", key, err.Error())
				continue
			}
			logger.GetInfoLogger().Printf("%s was shutdown gracefully", key)
		}

		close(wait)
	}()

	return wait
}
