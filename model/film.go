package model

import (
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Genre string

const (
	GenreComedy      Genre = "Comedy"
	GenreCrime       Genre = "Crime"
	GenreDocumentary Genre = "Documentary"
	GenreDrama       Genre = "Drama"
	GenreHorror      Genre = "Horror"
	GenreFamily      Genre = "Family"
	GenreRomance     Genre = "Romance"
	GenreScifi       Genre = "Scifi"
	GenreThriller    Genre = "Thriller"
)

var Genres = []Genre{
	GenreComedy, GenreCrime, GenreDocumentary, GenreDrama, GenreHorror,
	GenreFamily, GenreRomance, GenreScifi, GenreThriller,
}

// NormalizeGenre maps a user supplied genre token to the stored casing,
// upper-casing the first rune only ("comedy" -> "Comedy").
func NormalizeGenre(genre string) Genre {
	if genre == "" {
		return ""
	}
	runes := []rune(genre)
	runes[0] = unicode.ToUpper(runes[0])
	return Genre(runes)
}

func IsValidGenre(genre Genre) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

//---------------------------------------
//---------------------------------------

type Film struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Description      string             `bson:"description" json:"description"`
	Rating           float64            `bson:"rating" json:"rating"`
	Genre            Genre              `bson:"genre" json:"genre"`
	Released         int                `bson:"released" json:"released"`
	RunTime          int                `bson:"runTime" json:"runTime"`
	Director         string             `bson:"director" json:"director"`
	Starring         []string           `bson:"starring" json:"starring"`
	PosterImage      string             `bson:"posterImage" json:"posterImage"`
	BackgroundImage  string             `bson:"backgroundImage" json:"backgroundImage"`
	BackgroundColor  string             `bson:"backgroundColor" json:"backgroundColor"`
	PreviewVideoLink string             `bson:"previewVideoLink" json:"previewVideoLink"`
	VideoLink        string             `bson:"videoLink" json:"videoLink"`
	CommentCount     int64              `bson:"commentCount" json:"commentCount"`
	PublishDate      time.Time          `bson:"publishDate" json:"publishDate"`
	IsPromo          bool               `bson:"isPromo" json:"isPromo"`
	UserID           int64              `bson:"userId" json:"userId"`
	CreatedAt        time.Time          `bson:"createdAt" json:"-"`
}

// FilmListItem is the listing shape, the film plus the viewer specific
// isFavorite annotation. Anonymous viewers always get isFavorite=false.
type FilmListItem struct {
	Film       `bson:",inline"`
	IsFavorite bool `json:"isFavorite"`
}

type FilmRes struct {
	Film `bson:",inline"`
	User *UserRes `json:"user,omitempty"`
}

//---------------------------------------
//---------------------------------------

type CreateFilmReq struct {
	Name             string    `json:"name" validate:"required,min=5,max=100"`
	Description      string    `json:"description" validate:"required,min=20,max=1024"`
	Genre            Genre     `json:"genre" validate:"required,oneof=Comedy Crime Documentary Drama Horror Family Romance Scifi Thriller"`
	Released         int       `json:"released" validate:"required,gte=1895,releasedyear"`
	RunTime          int       `json:"runTime" validate:"required,gte=1,lte=240"`
	Director         string    `json:"director" validate:"required,min=2,max=50"`
	Starring         []string  `json:"starring" validate:"required,dive,min=1"`
	PosterImage      string    `json:"posterImage" validate:"required,max=256,mediafile=jpg"`
	BackgroundImage  string    `json:"backgroundImage" validate:"required,max=256,mediafile=jpg"`
	BackgroundColor  string    `json:"backgroundColor" validate:"required,hexcolor"`
	PreviewVideoLink string    `json:"previewVideoLink" validate:"required,max=256,mediafile=mp4"`
	VideoLink        string    `json:"videoLink" validate:"required,max=256,mediafile=mp4"`
	PublishDate      time.Time `json:"publishDate" validate:"required"`
	IsPromo          bool      `json:"isPromo"`
}

type UpdateFilmReq struct {
	Name             *string    `json:"name" validate:"omitempty,min=5,max=100"`
	Description      *string    `json:"description" validate:"omitempty,min=20,max=1024"`
	Genre            *Genre     `json:"genre" validate:"omitempty,oneof=Comedy Crime Documentary Drama Horror Family Romance Scifi Thriller"`
	Released         *int       `json:"released" validate:"omitempty,gte=1895,releasedyear"`
	RunTime          *int       `json:"runTime" validate:"omitempty,gte=1,lte=240"`
	Director         *string    `json:"director" validate:"omitempty,min=2,max=50"`
	Starring         []string   `json:"starring" validate:"omitempty,dive,min=1"`
	PosterImage      *string    `json:"posterImage" validate:"omitempty,max=256,mediafile=jpg"`
	BackgroundImage  *string    `json:"backgroundImage" validate:"omitempty,max=256,mediafile=jpg"`
	BackgroundColor  *string    `json:"backgroundColor" validate:"omitempty,hexcolor"`
	PreviewVideoLink *string    `json:"previewVideoLink" validate:"omitempty,max=256,mediafile=mp4"`
	VideoLink        *string    `json:"videoLink" validate:"omitempty,max=256,mediafile=mp4"`
	PublishDate      *time.Time `json:"publishDate" validate:"omitempty"`
	IsPromo          *bool      `json:"isPromo"`
}
