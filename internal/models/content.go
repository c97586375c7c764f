package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryAll          = "all"
	CategoryResourcePack = "resource-pack"
	CategoryMod          = "mod"
	CategoryClient       = "client"
)

// ContentSchema is a downloadable catalog entry. Downloads only ever grows;
// Rating is a running average kept to one decimal together with RatingsCount.
type ContentSchema struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Category    string             `json:"category" bson:"category"`
	Author      string             `json:"author" bson:"author"`
	Description string             `json:"description" bson:"description"`
	Version     string             `json:"version" bson:"version"`

	FileSize string `json:"fileSize" bson:"fileSize"`
	ImageURL string `json:"imageUrl" bson:"imageUrl"`

	Downloads    int     `json:"downloads" bson:"downloads"`
	Rating       float64 `json:"rating" bson:"rating"`
	RatingsCount int     `json:"ratingsCount" bson:"ratingsCount"`

	FileURL string `json:"fileUrl" bson:"fileUrl"`
	FileKey string `json:"-" bson:"fileKey"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func NewContent(title string, category string, author string, description string, version string, imageURL string) *ContentSchema {
	return &ContentSchema{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Category:    category,
		Author:      author,
		Description: description,
		Version:     version,
		ImageURL:    imageURL,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// ValidCategory reports whether category names one of the fixed catalog
// categories. CategoryAll is a filter value, not a storable category.
func ValidCategory(category string) bool {
	switch category {
	case CategoryResourcePack, CategoryMod, CategoryClient:
		return true
	}
	return false
}

func ValidCategoryFilter(category string) bool {
	return category == "" || category == CategoryAll || ValidCategory(category)
}

// HasFile gates the download path: items without an uploaded file cannot be
// downloaded.
func (content *ContentSchema) HasFile() bool {
	return content.FileURL != ""
}
