package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/crafthub/crafthub-backend/internal/handlers/api"
	"github.com/crafthub/crafthub-backend/internal/metrics"
	"github.com/crafthub/crafthub-backend/internal/middleware"
	"github.com/crafthub/crafthub-backend/internal/repositories"
	"github.com/crafthub/crafthub-backend/internal/services"
	"github.com/crafthub/crafthub-backend/internal/utils"
	"github.com/crafthub/crafthub-backend/internal/utils/cleanup"
	"github.com/crafthub/crafthub-backend/internal/utils/config"
	"github.com/crafthub/crafthub-backend/internal/utils/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := config.InitConfig(); err != nil {
		utils.CheckError(err)
	}

	godotenv.Load(".env", ".env.local")

	if err := repositories.InitDBRepository(); err != nil {
		panic(err)
	}

	err := repositories.CreateContentBucket()
	utils.CheckError(err)

	if err := repositories.InitTelemetryRepository(); err != nil {
		logger.GetWarnLogger().Printf("download telemetry disabled: %s", err.Error())
	}

	if err := middleware.InitAccessTokenMiddleware(); err != nil {
		utils.CheckError(err)
	}

	services.InitAllServices()

	MainRouter := gin.Default()
	MainRouter.Use(metrics.RequestCounter())
	MainRouter.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "error": "Page not found"})
	})

	MainRouter.GET("/metrics", metrics.Handler())

	apiGroup := MainRouter.Group("api")

	api.NewV1Handler(apiGroup)

	configData, err := config.GetConfigData()
	utils.CheckError(err)

	srv := &http.Server{
		Addr:    configData.HTTPBind,
		Handler: MainRouter,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	wait := cleanup.GracefulShutdown(context.Background(), 30*time.Second, map[string]cleanup.CleanupOperation{
		"gin": func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
		"services": func(ctx context.Context) error {
			return services.ShutdownAllServices()
		},
		"telemetry": func(ctx context.Context) error {
			return repositories.CloseTelemetryRepository()
		},
	})

	<-wait
}
