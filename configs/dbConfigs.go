package configs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DbConfigData holds catalog limits that operators can change at runtime
// through the `configs` collection, without a redeploy.
type DbConfigData struct {
	Id                    primitive.ObjectID `bson:"_id"`
	Title                 string             `bson:"title"`
	MaxCommentCount       int64              `bson:"maxCommentCount"`
	DefaultFilmCount      int64              `bson:"defaultFilmCount"`
	AvatarFileSizeLimit   int64              `bson:"avatarFileSizeLimit"`
	AvatarThumbnailSize   int                `bson:"avatarThumbnailSize"`
	PromoCacheDurationMin int64              `bson:"promoCacheDurationMin"`
}

var rwm sync.RWMutex
var dbConfigs = DbConfigData{
	MaxCommentCount:       50,
	DefaultFilmCount:      60,
	AvatarFileSizeLimit:   2 * 1024 * 1024,
	AvatarThumbnailSize:   256,
	PromoCacheDurationMin: 5,
}

func GetDbConfigs() DbConfigData {
	rwm.RLock()
	defer rwm.RUnlock()
	return dbConfigs
}

func LoadDbConfigs(mongodb *mongo.Database) {
	tick := time.NewTicker(15 * time.Minute)
	load(mongodb)
	for range tick.C {
		load(mongodb)
	}
}

func load(mongodb *mongo.Database) {
	rwm.Lock()
	defer rwm.Unlock()
	err := mongodb.
		Collection("configs").
		FindOne(context.Background(), bson.D{{Key: "title", Value: "server configs"}}).
		Decode(&dbConfigs)
	if err != nil {
		errorMessage := fmt.Sprintf("could not get dbConfig from mongodb: %s", err)
		if configs.PrintErrors {
			log.Println(errorMessage)
		}
		sentry.CaptureException(err)
	}
}
