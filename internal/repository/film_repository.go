package repository

import (
	"context"
	"movie_catalog/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IFilmRepository interface {
	Create(film *model.Film) (*model.Film, error)
	FindById(filmId primitive.ObjectID) (*model.Film, error)
	FindByName(name string) (*model.Film, error)
	Find(genre model.Genre, limit int64) ([]model.Film, error)
	FindPromo() (*model.Film, error)
	UpdateById(filmId primitive.ObjectID, update bson.M) (*model.Film, error)
	UpdateRating(filmId primitive.ObjectID, rating float64, commentCount int64) error
	DeleteById(filmId primitive.ObjectID) error
	Exists(filmId primitive.ObjectID) (bool, error)
}

type FilmRepository struct {
	mongodb *mongo.Database
}

func NewFilmRepository(mongodb *mongo.Database) *FilmRepository {
	return &FilmRepository{mongodb: mongodb}
}

//------------------------------------------
//------------------------------------------

func (r *FilmRepository) Create(film *model.Film) (*model.Film, error) {
	film.CreatedAt = time.Now().UTC()
	film.Rating = 0
	film.CommentCount = 0

	result, err := r.mongodb.
		Collection("films").
		InsertOne(context.TODO(), film)
	if err != nil {
		return nil, err
	}

	film.ID = result.InsertedID.(primitive.ObjectID)
	return film, nil
}

func (r *FilmRepository) FindById(filmId primitive.ObjectID) (*model.Film, error) {
	var film model.Film
	err := r.mongodb.
		Collection("films").
		FindOne(context.TODO(), bson.D{{Key: "_id", Value: filmId}}).
		Decode(&film)
	if err != nil {
		return nil, err
	}
	return &film, nil
}

func (r *FilmRepository) FindByName(name string) (*model.Film, error) {
	var film model.Film
	err := r.mongodb.
		Collection("films").
		FindOne(context.TODO(), bson.D{{Key: "name", Value: name}}).
		Decode(&film)
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// Find returns films newest-first by publish date, optionally filtered by
// genre. Genre must already be normalized to the stored casing.
func (r *FilmRepository) Find(genre model.Genre, limit int64) ([]model.Film, error) {
	filter := bson.D{}
	if genre != "" {
		filter = bson.D{{Key: "genre", Value: genre}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishDate", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.mongodb.
		Collection("films").
		Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, err
	}

	films := make([]model.Film, 0)
	if err := cursor.All(context.TODO(), &films); err != nil {
		return nil, err
	}
	return films, nil
}

// FindPromo returns the promoted film. Nothing stops operators from flagging
// more than one, so the most recently published one wins.
func (r *FilmRepository) FindPromo() (*model.Film, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "publishDate", Value: -1}})

	var film model.Film
	err := r.mongodb.
		Collection("films").
		FindOne(context.TODO(), bson.D{{Key: "isPromo", Value: true}}, opts).
		Decode(&film)
	if err != nil {
		return nil, err
	}
	return &film, nil
}

func (r *FilmRepository) UpdateById(filmId primitive.ObjectID, update bson.M) (*model.Film, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var film model.Film
	err := r.mongodb.
		Collection("films").
		FindOneAndUpdate(context.TODO(), bson.D{{Key: "_id", Value: filmId}}, bson.M{"$set": update}, opts).
		Decode(&film)
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// UpdateRating writes the derived aggregate fields. Nothing else may touch
// rating or commentCount.
func (r *FilmRepository) UpdateRating(filmId primitive.ObjectID, rating float64, commentCount int64) error {
	_, err := r.mongodb.
		Collection("films").
		UpdateOne(context.TODO(),
			bson.D{{Key: "_id", Value: filmId}},
			bson.M{"$set": bson.M{"rating": rating, "commentCount": commentCount}},
		)
	return err
}

func (r *FilmRepository) DeleteById(filmId primitive.ObjectID) error {
	result, err := r.mongodb.
		Collection("films").
		DeleteOne(context.TODO(), bson.D{{Key: "_id", Value: filmId}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *FilmRepository) Exists(filmId primitive.ObjectID) (bool, error) {
	count, err := r.mongodb.
		Collection("films").
		CountDocuments(context.TODO(), bson.D{{Key: "_id", Value: filmId}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
