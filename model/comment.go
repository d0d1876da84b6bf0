package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CommentText   string             `bson:"commentText" json:"commentText"`
	CommentRating int                `bson:"commentRating" json:"commentRating"`
	FilmID        primitive.ObjectID `bson:"filmId" json:"filmId"`
	UserID        int64              `bson:"userId" json:"userId"`
	CommentDate   time.Time          `bson:"commentDate" json:"commentDate"`
	CreatedAt     time.Time          `bson:"createdAt" json:"-"`
}

// CommentRes is a comment enriched with its author's public profile.
type CommentRes struct {
	Comment `bson:",inline"`
	User    *UserRes `json:"user,omitempty"`
}

//---------------------------------------
//---------------------------------------

type CreateCommentReq struct {
	CommentText   string    `json:"commentText" validate:"required,min=5,max=1024"`
	CommentRating int       `json:"commentRating" validate:"required,gte=1,lte=10"`
	FilmID        string    `json:"filmId" validate:"required,mongodb"`
	CommentDate   time.Time `json:"commentDate" validate:"required"`
}

// FilmRatingAggregate carries the result of the per-film comment aggregation.
type FilmRatingAggregate struct {
	CommentCount int64   `bson:"commentCount"`
	Rating       float64 `bson:"rating"`
}
