package repository

import (
	"context"
	"movie_catalog/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type IWatchlistRepository interface {
	Create(entry *model.WatchlistEntry) (*model.WatchlistEntry, error)
	FindByUserIdAndFilmId(userId int64, filmId primitive.ObjectID) (*model.WatchlistEntry, error)
	FindByUserId(userId int64) ([]model.WatchlistEntryRes, error)
	FindFilmIdsByUserId(userId int64) ([]primitive.ObjectID, error)
	Delete(userId int64, filmId primitive.ObjectID) error
	DeleteByFilmId(filmId primitive.ObjectID) (int64, error)
}

type WatchlistRepository struct {
	mongodb *mongo.Database
}

func NewWatchlistRepository(mongodb *mongo.Database) *WatchlistRepository {
	return &WatchlistRepository{mongodb: mongodb}
}

//------------------------------------------
//------------------------------------------

// Create inserts a bookmark. The unique (userId, filmId) index makes a
// concurrent double-toggle fail with a duplicate-key error, which callers
// treat as "already exists".
func (r *WatchlistRepository) Create(entry *model.WatchlistEntry) (*model.WatchlistEntry, error) {
	entry.CreatedAt = time.Now().UTC()

	result, err := r.mongodb.
		Collection("watchlist").
		InsertOne(context.TODO(), entry)
	if err != nil {
		return nil, err
	}

	entry.ID = result.InsertedID.(primitive.ObjectID)
	return entry, nil
}

func (r *WatchlistRepository) FindByUserIdAndFilmId(userId int64, filmId primitive.ObjectID) (*model.WatchlistEntry, error) {
	var entry model.WatchlistEntry
	err := r.mongodb.
		Collection("watchlist").
		FindOne(context.TODO(), bson.D{{Key: "userId", Value: userId}, {Key: "filmId", Value: filmId}}).
		Decode(&entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByUserId returns the user's entries with the referenced film joined in.
func (r *WatchlistRepository) FindByUserId(userId int64) ([]model.WatchlistEntryRes, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "userId", Value: userId}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "films"},
			{Key: "localField", Value: "filmId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "film"},
		}}},
		bson.D{{Key: "$unwind", Value: "$film"}},
	}

	cursor, err := r.mongodb.
		Collection("watchlist").
		Aggregate(context.TODO(), pipeline)
	if err != nil {
		return nil, err
	}

	entries := make([]model.WatchlistEntryRes, 0)
	if err := cursor.All(context.TODO(), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindFilmIdsByUserId is the single bulk fetch the film lister uses to build
// the isFavorite set. One query regardless of how many films get listed.
func (r *WatchlistRepository) FindFilmIdsByUserId(userId int64) ([]primitive.ObjectID, error) {
	cursor, err := r.mongodb.
		Collection("watchlist").
		Find(context.TODO(), bson.D{{Key: "userId", Value: userId}})
	if err != nil {
		return nil, err
	}

	entries := make([]model.WatchlistEntry, 0)
	if err := cursor.All(context.TODO(), &entries); err != nil {
		return nil, err
	}

	filmIds := make([]primitive.ObjectID, 0, len(entries))
	for i := range entries {
		filmIds = append(filmIds, entries[i].FilmID)
	}
	return filmIds, nil
}

func (r *WatchlistRepository) Delete(userId int64, filmId primitive.ObjectID) error {
	_, err := r.mongodb.
		Collection("watchlist").
		DeleteMany(context.TODO(), bson.D{{Key: "userId", Value: userId}, {Key: "filmId", Value: filmId}})
	return err
}

func (r *WatchlistRepository) DeleteByFilmId(filmId primitive.ObjectID) (int64, error) {
	result, err := r.mongodb.
		Collection("watchlist").
		DeleteMany(context.TODO(), bson.D{{Key: "filmId", Value: filmId}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
