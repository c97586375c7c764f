package catalog

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/crafthub/crafthub-backend/internal/middleware"
	"github.com/crafthub/crafthub-backend/internal/models"
	"github.com/crafthub/crafthub-backend/internal/render"
	"github.com/crafthub/crafthub-backend/internal/repositories"
	commentsvc "github.com/crafthub/crafthub-backend/internal/services/comment"
	contentsvc "github.com/crafthub/crafthub-backend/internal/services/content"
	"github.com/crafthub/crafthub-backend/internal/services/storage"
	"github.com/crafthub/crafthub-backend/internal/types"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/time/rate"
)

const (
	downloadTimeout = 30 * time.Second
)

type CatalogHandler struct{}

func (handler *CatalogHandler) API_ListContent(c *gin.Context) {
	category := c.Query("category")

	if !models.ValidCategoryFilter(category) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("unknown category (%s)", category)})
		c.Abort()
		return
	}

	items, err := contentsvc.ListContent()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": contentsvc.FilterByCategory(items, category)})
}

func (handler *CatalogHandler) API_GetContent(c *gin.Context) {
	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid content id"})
		c.Abort()
		return
	}

	theContent, err := contentsvc.GetContent(contentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	descriptionHTML, err := render.Description(theContent.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": theContent, "description_html": descriptionHTML})
}

// API_Download is the authoritative forced-download path: resolve the stored
// object, bump the counters and stream the bytes back under an attachment
// disposition with a binary content type.
func (handler *CatalogHandler) API_Download(c *gin.Context) {
	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid content id"})
		c.Abort()
		return
	}

	theContent, err := contentsvc.GetContent(contentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	if !theContent.HasFile() {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "content has no file attached"})
		c.Abort()
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), downloadTimeout)
	defer cancel()

	obj, err := repositories.GetContentFile(ctx, theContent.FileKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}
	defer obj.Body.Close()

	contentsvc.RecordDownload(ctx, theContent, c.ClientIP())

	size := obj.ContentLength

	fileName := storage.DownloadFileName(theContent.Title, filepath.Ext(theContent.FileKey))

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, fileName),
	)
	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Length", fmt.Sprintf("%d", *size))

	c.DataFromReader(http.StatusOK, *size, "application/octet-stream", obj.Body, nil)
}

// API_DownloadCount is the standalone best-effort counter increment used when
// the file bytes were fetched elsewhere.
func (handler *CatalogHandler) API_DownloadCount(c *gin.Context) {
	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid content id"})
		c.Abort()
		return
	}

	theContent, err := contentsvc.GetContent(contentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	if !theContent.HasFile() {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "content has no file attached"})
		c.Abort()
		return
	}

	contentsvc.RecordDownload(c.Request.Context(), theContent, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (handler *CatalogHandler) API_Rate(c *gin.Context) {
	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid content id"})
		c.Abort()
		return
	}

	var PostData types.RateRequest
	if err := c.BindJSON(&PostData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	if PostData.Star < 1 || PostData.Star > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "star must be between 1 and 5"})
		c.Abort()
		return
	}

	theContent, err := contentsvc.RateContent(contentID, PostData.Star)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": theContent})
}

func (handler *CatalogHandler) API_ListComments(c *gin.Context) {
	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid content id"})
		c.Abort()
		return
	}

	comments, err := commentsvc.ListComments(contentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}

func (handler *CatalogHandler) API_PostComment(c *gin.Context) {
	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid content id"})
		c.Abort()
		return
	}

	var PostData types.PostCommentRequest
	if err := c.BindJSON(&PostData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	// Local rejection: nothing below reaches the store when validation fails.
	if _, _, err := commentsvc.Validate(PostData.Author, PostData.Text); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	newComment, err := commentsvc.PostComment(contentID, PostData.Author, PostData.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "comment": newComment})
}

func NewCatalogHandler(router *gin.RouterGroup) {
	handler := &CatalogHandler{}

	commentLimiter := middleware.NewRateLimiter(rate.Limit(6.0/60.0), 3)

	router.GET("/", handler.API_ListContent)
	router.GET("/:id", handler.API_GetContent)
	router.GET("/:id/download", handler.API_Download)
	router.POST("/:id/download-count", handler.API_DownloadCount)
	router.POST("/:id/ratings", handler.API_Rate)
	router.GET("/:id/comments", handler.API_ListComments)
	router.POST("/:id/comments", commentLimiter.Middleware(), handler.API_PostComment)
}
