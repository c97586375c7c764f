package content

import (
	"testing"

	"github.com/crafthub/crafthub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRating(t *testing.T) {
	tests := []struct {
		name         string
		rating       float64
		ratingsCount int
		star         int
		wantRating   float64
		wantCount    int
	}{
		{"first vote", 0, 0, 5, 5.0, 1},
		{"second vote averages", 5.0, 1, 4, 4.5, 2},
		{"rounds to one decimal", 4.0, 3, 5, 4.3, 4},
		{"low vote drags average down", 4.5, 2, 3, 4.0, 3},
		{"one star floor", 0, 0, 1, 1.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRating, gotCount := NextRating(tt.rating, tt.ratingsCount, tt.star)
			assert.InDelta(t, tt.wantRating, gotRating, 0.001)
			assert.Equal(t, tt.wantCount, gotCount)
		})
	}
}

func TestNextRatingNeverExceedsBounds(t *testing.T) {
	rating, count := 0.0, 0
	for i := 0; i < 100; i++ {
		rating, count = NextRating(rating, count, 5)
		require.LessOrEqual(t, rating, 5.0)
		require.GreaterOrEqual(t, rating, 1.0)
	}
	assert.Equal(t, 100, count)
}

func TestFilterByCategory(t *testing.T) {
	items := []models.ContentSchema{
		{Title: "Faithful", Category: models.CategoryResourcePack},
		{Title: "OptiFine", Category: models.CategoryMod},
		{Title: "Lunar", Category: models.CategoryClient},
		{Title: "Sodium", Category: models.CategoryMod},
	}

	t.Run("empty category returns everything", func(t *testing.T) {
		assert.Len(t, FilterByCategory(items, ""), 4)
	})

	t.Run("all returns everything", func(t *testing.T) {
		assert.Len(t, FilterByCategory(items, models.CategoryAll), 4)
	})

	t.Run("single category", func(t *testing.T) {
		mods := FilterByCategory(items, models.CategoryMod)
		require.Len(t, mods, 2)
		assert.Equal(t, "OptiFine", mods[0].Title)
		assert.Equal(t, "Sodium", mods[1].Title)
	})

	t.Run("unknown category matches nothing", func(t *testing.T) {
		assert.Empty(t, FilterByCategory(items, "shader"))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		FilterByCategory(items, models.CategoryClient)
		assert.Len(t, items, 4)
	})
}
