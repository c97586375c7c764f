package repositories

import (
	"context"

	"github.com/crafthub/crafthub-backend/internal/models"
	"github.com/mrhid6/go-mongoose/mongoose"
)

var (
	db *mongoose.MongooseClient
)

func InitDBRepository() error {
	ctx := context.Background()
	mc, err := mongoose.NewMongoClient(ctx, mongoose.GetConnectionOptionsFromEnv())
	if err != nil {
		return err
	}

	db = mc

	err = registerModels(
		&models.ContentSchema{},
		&models.CommentSchema{},
		&models.UserSchema{},
		&models.SessionSchema{},
		&models.EventSchema{},
	)

	if err != nil {
		return err
	}

	return nil
}

func registerModels(schemas ...interface{}) error {
	for _, schema := range schemas {
		if _, err := db.RegisterModel(schema); err != nil {
			return err
		}
	}
	return nil
}

func GetMongoClient() *mongoose.MongooseClient {
	return db
}
