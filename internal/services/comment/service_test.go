package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("accepts a normal comment", func(t *testing.T) {
		author, text, err := Validate("Steve", "Great pack, runs smooth on my server")
		require.NoError(t, err)
		assert.Equal(t, "Steve", author)
		assert.Equal(t, "Great pack, runs smooth on my server", text)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		author, text, err := Validate("  Alex  ", "\tnice\n")
		require.NoError(t, err)
		assert.Equal(t, "Alex", author)
		assert.Equal(t, "nice", text)
	})

	t.Run("rejects empty author", func(t *testing.T) {
		_, _, err := Validate("   ", "hello")
		assert.ErrorIs(t, err, ErrEmptyAuthor)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, _, err := Validate("Steve", "   ")
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("rejects profanity in text", func(t *testing.T) {
		_, _, err := Validate("Steve", "this is shit")
		assert.ErrorIs(t, err, ErrProfanity)
	})

	t.Run("rejects profanity in author", func(t *testing.T) {
		_, _, err := Validate("fucker", "looks good")
		assert.ErrorIs(t, err, ErrProfanity)
	})
}
