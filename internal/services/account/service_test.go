package account

import (
	"testing"
	"time"

	"github.com/crafthub/crafthub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	key := []byte("test-signing-key")

	theSession := &models.SessionSchema{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Expiry: time.Now().Add(time.Hour),
	}

	token, err := SignSessionToken(theSession, key)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseSessionToken(token, key)
	require.NoError(t, err)
	assert.Equal(t, theSession.ID.Hex(), claims.SessionID)
	assert.Equal(t, theSession.UserID.Hex(), claims.UserID)
}

func TestParseSessionTokenWrongKey(t *testing.T) {
	theSession := &models.SessionSchema{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Expiry: time.Now().Add(time.Hour),
	}

	token, err := SignSessionToken(theSession, []byte("key-one"))
	require.NoError(t, err)

	_, err = ParseSessionToken(token, []byte("key-two"))
	assert.Error(t, err)
}

func TestParseSessionTokenExpired(t *testing.T) {
	key := []byte("test-signing-key")

	theSession := &models.SessionSchema{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Expiry: time.Now().Add(-time.Hour),
	}

	token, err := SignSessionToken(theSession, key)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, key)
	assert.Error(t, err)
}

func TestParseSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken("not-a-token", []byte("key"))
	assert.Error(t, err)
}
