package auth

import (
	"errors"
	"net/http"

	"github.com/crafthub/crafthub-backend/internal/middleware"
	"github.com/crafthub/crafthub-backend/internal/models"
	"github.com/crafthub/crafthub-backend/internal/services/account"
	"github.com/crafthub/crafthub-backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct{}

func (handler *AuthHandler) API_Login(c *gin.Context) {
	var PostData types.LoginRequest
	if err := c.BindJSON(&PostData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	theSession, token, err := account.Login(PostData.Email, PostData.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "success": false})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		}
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "expiry": theSession.Expiry})
}

// API_LoginExternal exchanges a verified identity-provider token for a
// first-party session. The token itself is checked by the middleware.
func (handler *AuthHandler) API_LoginExternal(c *gin.Context) {
	claims, ok := c.Keys["user"].(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token claims"})
		c.Abort()
		return
	}

	email, _ := claims["email"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "token has no email claim"})
		c.Abort()
		return
	}

	theSession, token, err := account.LoginExternal(email)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "success": false})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		}
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "expiry": theSession.Expiry})
}

func (handler *AuthHandler) API_GetSession(c *gin.Context) {
	theSession, _ := c.Keys["Session"].(*models.SessionSchema)
	theUser, _ := c.Keys["User"].(*models.UserSchema)

	if theSession == nil || theUser == nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "no session"})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": theSession, "user": theUser})
}

func (handler *AuthHandler) API_Logout(c *gin.Context) {
	theSession, _ := c.Keys["Session"].(*models.SessionSchema)

	if theSession == nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "no session"})
		c.Abort()
		return
	}

	if err := account.Logout(theSession.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func NewAuthHandler(router *gin.RouterGroup) {
	handler := &AuthHandler{}

	sessionChain := []gin.HandlerFunc{
		middleware.Middleware_DecodeSessionJWT(),
		middleware.Middleware_VerifySession(),
	}

	router.POST("/login", handler.API_Login)
	router.POST("/login/external", middleware.Middleware_CheckAccessToken(), handler.API_LoginExternal)
	router.GET("/session", append(sessionChain, handler.API_GetSession)...)
	router.POST("/logout", append(sessionChain, handler.API_Logout)...)
}
