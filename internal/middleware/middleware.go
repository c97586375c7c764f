package middleware

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/crafthub/crafthub-backend/internal/models"
	"github.com/crafthub/crafthub-backend/internal/services/account"
	"github.com/crafthub/crafthub-backend/internal/services/storage"
	"github.com/crafthub/crafthub-backend/internal/types"
	"github.com/crafthub/crafthub-backend/internal/utils/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/time/rate"
)

var (
	jwks keyfunc.Keyfunc
)

// InitAccessTokenMiddleware wires the optional external identity provider.
// Without AUTH_JWKS_URL the admin panel only accepts first-party sessions.
func InitAccessTokenMiddleware() error {
	jwksURL := os.Getenv("AUTH_JWKS_URL")
	if jwksURL == "" {
		return nil
	}

	k, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return fmt.Errorf("error loading jwks with error: %s", err.Error())
	}

	jwks = k
	return nil
}

func Middleware_DecodeSessionJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("x-crafthub-session")

		if key == "" {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "session token was null!"})
			c.Abort()
			return
		}

		claims, err := account.ParseSessionToken(key, []byte(os.Getenv("JWT_KEY")))
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
			c.Abort()
			return
		}

		c.Set("SessionJWT", claims)

		c.Next()
	}
}

// Middleware_VerifySession resolves the token to a live session and its user
// and threads both through the request context. Requires DecodeSessionJWT.
func Middleware_VerifySession() gin.HandlerFunc {
	return func(c *gin.Context) {
		JWTData, _ := c.Keys["SessionJWT"].(types.SessionJWT)

		sessionID, err := primitive.ObjectIDFromHex(JWTData.SessionID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "invalid session id"})
			c.Abort()
			return
		}

		theSession, err := account.GetSession(sessionID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "success": false})
			c.Abort()
			return
		}

		theUser, err := account.GetSessionUser(theSession)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
			c.Abort()
			return
		}

		c.Set("Session", theSession)
		c.Set("User", theUser)

		c.Next()
	}
}

// Middleware_RequireAdmin rejects before any store call when the session user
// does not carry the admin role.
func Middleware_RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		theUser, ok := c.Keys["User"].(*models.UserSchema)
		if !ok || !theUser.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "admin session required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Middleware_CheckAccessToken validates a bearer token issued by the external
// identity provider and exposes its claims.
func Middleware_CheckAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("x-crafthub-auth-token")

		if jwks == nil {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "external login is not configured"})
			c.Abort()
			return
		}

		if tokenStr == "" {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "access token was null!"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenStr, jwks.Keyfunc)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": fmt.Sprintf("invalid token: %v", err)})
			c.Abort()
			return
		}

		if !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token claims"})
			c.Abort()
			return
		}

		c.Set("user", claims)
	}
}

// Middleware_UploadFile stages an optional multipart file. Oversized uploads
// are rejected here, before any storage call happens.
func Middleware_UploadFile() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			// No file attached, nothing to stage.
			c.Next()
			return
		}

		maxUploadMB := int64(50)
		if configData, err := config.GetConfigData(); err == nil && configData.MaxUploadMB > 0 {
			maxUploadMB = configData.MaxUploadMB
		}

		if file.Size > maxUploadMB*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   fmt.Sprintf("file exceeds the %dMB upload limit", maxUploadMB),
			})
			c.Abort()
			return
		}

		fileIdentity := storage.ConvertUploadToFileIdentity(file)

		if err := storage.StageUpload(file, fileIdentity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			c.Abort()
			return
		}

		c.Set("FileIdentity", fileIdentity)

		c.Next()
	}
}

type visitorLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter tracks one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitorLimiter

	r     rate.Limit
	burst int

	stopCh chan struct{}
}

func NewRateLimiter(r rate.Limit, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitorLimiter),
		r:        r,
		burst:    burst,
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitorLimiter{limiter: rate.NewLimiter(rl.r, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for key, v := range rl.visitors {
				if time.Since(v.lastSeen) > 10*time.Minute {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}
