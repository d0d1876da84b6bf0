package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WatchlistEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    int64              `bson:"userId" json:"userId"`
	FilmID    primitive.ObjectID `bson:"filmId" json:"filmId"`
	CreatedAt time.Time          `bson:"createdAt" json:"-"`
}

// WatchlistEntryRes is an entry populated with its film and, transitively,
// the film's owning user.
type WatchlistEntryRes struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	UserID int64              `bson:"userId" json:"userId"`
	Film   *FilmRes           `bson:"film" json:"film"`
}

//---------------------------------------
//---------------------------------------

type ToggleWatchlistReq struct {
	FilmID string `json:"filmId" validate:"required,mongodb"`
}

type ToggleWatchlistRes struct {
	Removed bool               `json:"removed"`
	Entry   *WatchlistEntryRes `json:"entry,omitempty"`
}
