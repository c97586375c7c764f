package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/crafthub/crafthub-backend/internal/middleware"
	commentsvc "github.com/crafthub/crafthub-backend/internal/services/comment"
	contentsvc "github.com/crafthub/crafthub-backend/internal/services/content"
	"github.com/crafthub/crafthub-backend/internal/services/storage"
	"github.com/crafthub/crafthub-backend/internal/types"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	uploadTimeout = 60 * time.Second
	deleteTimeout = 30 * time.Second
)

type AdminHandler struct{}

func getFileIdentity(c *gin.Context) *types.StorageFileIdentity {
	raw, ok := c.Keys["FileIdentity"]
	if !ok {
		return nil
	}

	fileIdentity, ok := raw.(types.StorageFileIdentity)
	if !ok {
		return nil
	}

	return &fileIdentity
}

func (handler *AdminHandler) API_CreateContent(c *gin.Context) {
	fileIdentity := getFileIdentity(c)

	var form types.ContentForm
	if err := c.ShouldBind(&form); err != nil {
		if fileIdentity != nil {
			storage.DiscardStaged(*fileIdentity)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	newContent, err := contentsvc.CreateContent(ctx, form, fileIdentity)
	if err != nil {
		if fileIdentity != nil {
			storage.DiscardStaged(*fileIdentity)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": newContent})
}

func (handler *AdminHandler) API_UpdateContent(c *gin.Context) {
	fileIdentity := getFileIdentity(c)

	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		if fileIdentity != nil {
			storage.DiscardStaged(*fileIdentity)
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid content id"})
		c.Abort()
		return
	}

	var form types.ContentForm
	if err := c.ShouldBind(&form); err != nil {
		if fileIdentity != nil {
			storage.DiscardStaged(*fileIdentity)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	theContent, err := contentsvc.UpdateContent(ctx, contentID, form, fileIdentity)
	if err != nil {
		if fileIdentity != nil {
			storage.DiscardStaged(*fileIdentity)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": theContent})
}

func (handler *AdminHandler) API_DeleteContent(c *gin.Context) {
	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid content id"})
		c.Abort()
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), deleteTimeout)
	defer cancel()

	if err := contentsvc.DeleteContent(ctx, contentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (handler *AdminHandler) API_DeleteComment(c *gin.Context) {
	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid comment id"})
		c.Abort()
		return
	}

	if err := commentsvc.DeleteComment(commentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func NewAdminHandler(router *gin.RouterGroup) {
	handler := &AdminHandler{}

	router.Use(middleware.Middleware_DecodeSessionJWT())
	router.Use(middleware.Middleware_VerifySession())
	router.Use(middleware.Middleware_RequireAdmin())

	router.POST("/content", middleware.Middleware_UploadFile(), handler.API_CreateContent)
	router.PUT("/content/:id", middleware.Middleware_UploadFile(), handler.API_UpdateContent)
	router.DELETE("/content/:id", handler.API_DeleteContent)
	router.DELETE("/comments/:id", handler.API_DeleteComment)
}
