package account

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/crafthub/crafthub-backend/internal/models"
	"github.com/crafthub/crafthub-backend/internal/repositories"
	"github.com/crafthub/crafthub-backend/internal/types"
	"github.com/crafthub/crafthub-backend/internal/utils/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionLifetime = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionExpired     = errors.New("session has expired")
)

// InitAccountService seeds the admin user from the environment when the user
// collection is empty. Single-admin deployment: one seeded user, role admin.
func InitAccountService() {
	UserModel, err := repositories.GetMongoClient().GetModel("User")
	if err != nil {
		logger.GetErrorLogger().Printf("error getting user model with error: %s", err.Error())
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.GetWarnLogger().Println("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	existing := &models.UserSchema{}
	UserModel.FindOne(existing, bson.M{"email": email})
	if !existing.ID.IsZero() {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.GetErrorLogger().Printf("error hashing admin password with error: %s", err.Error())
		return
	}

	newUser := &models.UserSchema{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Username:  "admin",
		Password:  string(hash),
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := UserModel.Create(newUser); err != nil {
		logger.GetErrorLogger().Printf("error seeding admin user with error: %s", err.Error())
		return
	}

	logger.GetInfoLogger().Printf("seeded admin user %s", email)
}

func ShutdownAccountService() error {
	return nil
}

// Login verifies the credentials, drops the user's previous sessions and
// issues a fresh one together with its signed token.
func Login(email string, password string) (*models.SessionSchema, string, error) {
	UserModel, err := repositories.GetMongoClient().GetModel("User")
	if err != nil {
		return nil, "", err
	}

	SessionModel, err := repositories.GetMongoClient().GetModel("Session")
	if err != nil {
		return nil, "", err
	}

	theUser := &models.UserSchema{}
	UserModel.FindOne(theUser, bson.M{"email": email})
	if theUser.ID.IsZero() {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(theUser.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := SessionModel.Delete(bson.M{"userId": theUser.ID}); err != nil {
		logger.GetWarnLogger().Printf("error deleting existing sessions with error: %s", err.Error())
	}

	newSession := models.NewSession(theUser.ID, time.Now().Add(sessionLifetime))

	if err := SessionModel.Create(newSession); err != nil {
		return nil, "", fmt.Errorf("error creating session with error: %s", err.Error())
	}

	token, err := SignSessionToken(newSession, []byte(os.Getenv("JWT_KEY")))
	if err != nil {
		return nil, "", err
	}

	return newSession, token, nil
}

// LoginExternal mints a first-party session for an identity-provider subject
// whose verified email matches a local admin user.
func LoginExternal(email string) (*models.SessionSchema, string, error) {
	UserModel, err := repositories.GetMongoClient().GetModel("User")
	if err != nil {
		return nil, "", err
	}

	SessionModel, err := repositories.GetMongoClient().GetModel("Session")
	if err != nil {
		return nil, "", err
	}

	theUser := &models.UserSchema{}
	UserModel.FindOne(theUser, bson.M{"email": email})
	if theUser.ID.IsZero() {
		return nil, "", ErrInvalidCredentials
	}

	newSession := models.NewSession(theUser.ID, time.Now().Add(sessionLifetime))

	if err := SessionModel.Create(newSession); err != nil {
		return nil, "", fmt.Errorf("error creating session with error: %s", err.Error())
	}

	token, err := SignSessionToken(newSession, []byte(os.Getenv("JWT_KEY")))
	if err != nil {
		return nil, "", err
	}

	return newSession, token, nil
}

// GetSession resolves a live session. Expired sessions are removed on sight.
func GetSession(sessionID primitive.ObjectID) (*models.SessionSchema, error) {
	SessionModel, err := repositories.GetMongoClient().GetModel("Session")
	if err != nil {
		return nil, err
	}

	theSession := &models.SessionSchema{}
	if err := SessionModel.FindOneById(theSession, sessionID); err != nil {
		return nil, fmt.Errorf("error finding session with error: %s", err.Error())
	}

	if theSession.Expired() {
		if err := SessionModel.DeleteById(sessionID); err != nil {
			logger.GetWarnLogger().Printf("error deleting expired session with error: %s", err.Error())
		}
		return nil, ErrSessionExpired
	}

	return theSession, nil
}

func GetSessionUser(theSession *models.SessionSchema) (*models.UserSchema, error) {
	UserModel, err := repositories.GetMongoClient().GetModel("User")
	if err != nil {
		return nil, err
	}

	theUser := &models.UserSchema{}
	if err := UserModel.FindOneById(theUser, theSession.UserID); err != nil {
		return nil, fmt.Errorf("error finding session user with error: %s", err.Error())
	}

	return theUser, nil
}

// Logout deletes the session; the token stops resolving in the same action,
// so admin status and panel access cannot diverge.
func Logout(sessionID primitive.ObjectID) error {
	SessionModel, err := repositories.GetMongoClient().GetModel("Session")
	if err != nil {
		return err
	}

	if err := SessionModel.DeleteById(sessionID); err != nil {
		return fmt.Errorf("error deleting session with error: %s", err.Error())
	}

	return nil
}

func SignSessionToken(theSession *models.SessionSchema, key []byte) (string, error) {
	claims := jwt.MapClaims{
		"sessionId": theSession.ID.Hex(),
		"userId":    theSession.UserID.Hex(),
		"exp":       theSession.Expiry.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("error signing session token with error: %s", err.Error())
	}

	return signed, nil
}

func ParseSessionToken(tokenStr string, key []byte) (types.SessionJWT, error) {
	var session types.SessionJWT

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return session, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return session, errors.New("invalid token claims")
	}

	session.SessionID, _ = claims["sessionId"].(string)
	session.UserID, _ = claims["userId"].(string)

	if session.SessionID == "" {
		return session, errors.New("token has no session id")
	}

	return session, nil
}
