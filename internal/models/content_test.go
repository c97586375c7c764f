package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryResourcePack))
	assert.True(t, ValidCategory(CategoryMod))
	assert.True(t, ValidCategory(CategoryClient))

	assert.False(t, ValidCategory(CategoryAll))
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("shader"))
}

func TestValidCategoryFilter(t *testing.T) {
	assert.True(t, ValidCategoryFilter(""))
	assert.True(t, ValidCategoryFilter(CategoryAll))
	assert.True(t, ValidCategoryFilter(CategoryMod))

	assert.False(t, ValidCategoryFilter("shader"))
}

func TestHasFile(t *testing.T) {
	withFile := NewContent("Faithful", CategoryResourcePack, "CraftHub Team", "desc", "1.0", "img.png")
	withFile.FileURL = "https://objects.example/bucket/content/abc_faithful.zip"
	assert.True(t, withFile.HasFile())

	withoutFile := NewContent("Draft", CategoryMod, "CraftHub Team", "desc", "1.0", "img.png")
	assert.False(t, withoutFile.HasFile())
}
