package api

import (
	"os"

	"github.com/crafthub/crafthub-backend/internal/handlers/api/admin"
	"github.com/crafthub/crafthub-backend/internal/handlers/api/auth"
	"github.com/crafthub/crafthub-backend/internal/handlers/api/catalog"
	"github.com/crafthub/crafthub-backend/internal/utils/config"
	"github.com/gin-gonic/gin"
)

type V1Handler struct{}

func (h *V1Handler) API_Ping(c *gin.Context) {

	hostname, _ := os.Hostname()
	configData, _ := config.GetConfigData()

	c.JSON(200, gin.H{"success": true, "node": hostname, "version": configData.Version})
}

func NewV1Handler(router *gin.RouterGroup) {
	group := router.Group("v1")
	handler := V1Handler{}

	group.GET("/ping", handler.API_Ping)

	catalogGroup := group.Group("catalog")
	catalog.NewCatalogHandler(catalogGroup)

	adminGroup := group.Group("admin")
	admin.NewAdminHandler(adminGroup)

	authGroup := group.Group("auth")
	auth.NewAuthHandler(authGroup)
}
