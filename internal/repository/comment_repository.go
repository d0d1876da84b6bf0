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

type ICommentRepository interface {
	Create(comment *model.Comment) (*model.Comment, error)
	FindByFilmId(filmId primitive.ObjectID, limit int64) ([]model.Comment, error)
	AggregateFilmRating(filmId primitive.ObjectID) (*model.FilmRatingAggregate, error)
	DeleteByFilmId(filmId primitive.ObjectID) (int64, error)
}

type CommentRepository struct {
	mongodb *mongo.Database
}

func NewCommentRepository(mongodb *mongo.Database) *CommentRepository {
	return &CommentRepository{mongodb: mongodb}
}

//------------------------------------------
//------------------------------------------

func (r *CommentRepository) Create(comment *model.Comment) (*model.Comment, error) {
	comment.CreatedAt = time.Now().UTC()

	result, err := r.mongodb.
		Collection("comments").
		InsertOne(context.TODO(), comment)
	if err != nil {
		return nil, err
	}

	comment.ID = result.InsertedID.(primitive.ObjectID)
	return comment, nil
}

func (r *CommentRepository) FindByFilmId(filmId primitive.ObjectID, limit int64) ([]model.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.mongodb.
		Collection("comments").
		Find(context.TODO(), bson.D{{Key: "filmId", Value: filmId}}, opts)
	if err != nil {
		return nil, err
	}

	comments := make([]model.Comment, 0)
	if err := cursor.All(context.TODO(), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AggregateFilmRating groups the film's comments into a count and the raw
// arithmetic mean of their ratings. Rounding happens in the service so the
// mode is ours, not the store's. A film without comments yields the zero
// aggregate.
func (r *CommentRepository) AggregateFilmRating(filmId primitive.ObjectID) (*model.FilmRatingAggregate, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "filmId", Value: filmId}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$filmId"},
			{Key: "commentCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "rating", Value: bson.D{{Key: "$avg", Value: "$commentRating"}}},
		}}},
	}

	cursor, err := r.mongodb.
		Collection("comments").
		Aggregate(context.TODO(), pipeline)
	if err != nil {
		return nil, err
	}

	var results []model.FilmRatingAggregate
	if err := cursor.All(context.TODO(), &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &model.FilmRatingAggregate{}, nil
	}
	return &results[0], nil
}

func (r *CommentRepository) DeleteByFilmId(filmId primitive.ObjectID) (int64, error) {
	result, err := r.mongodb.
		Collection("comments").
		DeleteMany(context.TODO(), bson.D{{Key: "filmId", Value: filmId}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
