package mongodb

import (
	"context"
	"movie_catalog/configs"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDatabase struct {
	Db     *mongo.Database
	client *mongo.Client
}

var MONGODB *MongoDatabase

func NewDatabase() (*MongoDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Client().ApplyURI(configs.GetConfigs().MongodbDatabaseUrl)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	err = client.Ping(context.TODO(), nil)
	if err != nil {
		return nil, err
	}
	MONGODB = &MongoDatabase{
		client: client,
		Db:     client.Database(configs.GetConfigs().MongodbDatabaseName),
	}
	return MONGODB, nil
}

// EnsureIndexes creates the indexes the catalog depends on. The unique
// (userId, filmId) index converts the watchlist toggle race into a
// duplicate-key rejection instead of a silent duplicate.
func (d *MongoDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := d.Db.Collection("films").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "publishDate", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "genre", Value: 1}, {Key: "publishDate", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = d.Db.Collection("comments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "filmId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = d.Db.Collection("watchlist").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "filmId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "filmId", Value: 1}},
		},
	})
	return err
}

func (d *MongoDatabase) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := d.client.Disconnect(ctx); err != nil {
		panic(err)
	}
}

func (d *MongoDatabase) GetDB() *mongo.Database {
	return d.Db
}
