package handler

import (
	"encoding/json"
	"movie_catalog/internal/service"
	"movie_catalog/model"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFilmService returns canned results so the handler's routing and error
// mapping can be tested without a store.
type stubFilmService struct {
	films     []model.FilmListItem
	film      *model.FilmRes
	promo     *model.FilmRes
	listErr   error
	findErr   error
	promoErr  error
	lastGenre string
}

func (s *stubFilmService) Create(userId int64, req *model.CreateFilmReq) (*model.FilmRes, error) {
	return s.film, nil
}

func (s *stubFilmService) FindById(filmId string) (*model.FilmRes, error) {
	return s.film, s.findErr
}

func (s *stubFilmService) List(genre string, limit int64, viewerId *int64) ([]model.FilmListItem, error) {
	s.lastGenre = genre
	return s.films, s.listErr
}

func (s *stubFilmService) FindPromo() (*model.FilmRes, error) {
	return s.promo, s.promoErr
}

func (s *stubFilmService) Update(filmId string, userId int64, req *model.UpdateFilmReq) (*model.FilmRes, error) {
	return s.film, nil
}

func (s *stubFilmService) Delete(filmId string, userId int64) error {
	return nil
}

func newFilmTestApp(svc service.IFilmService) *fiber.App {
	app := fiber.New()
	h := NewFilmHandler(svc)
	app.Get("/v1/films", h.Index)
	app.Get("/v1/films/genre/:genre", h.IndexByGenre)
	app.Get("/v1/films/promo", h.ShowPromo)
	app.Get("/v1/films/:filmId", h.Show)
	return app
}

//------------------------------------------
//------------------------------------------

func TestFilmIndexReturnsListing(t *testing.T) {
	svc := &stubFilmService{
		films: []model.FilmListItem{
			{Film: model.Film{Name: "Moonrise Kingdom"}, IsFavorite: true},
		},
	}
	app := newFilmTestApp(svc)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/films", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Data []model.FilmListItem `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Moonrise Kingdom", body.Data[0].Name)
	assert.True(t, body.Data[0].IsFavorite)
}

func TestFilmIndexByGenrePassesRawToken(t *testing.T) {
	svc := &stubFilmService{films: []model.FilmListItem{}}
	app := newFilmTestApp(svc)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/films/genre/comedy", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	// normalization is the service's job, the handler hands the token over as-is
	assert.Equal(t, "comedy", svc.lastGenre)
}

func TestFilmIndexByGenreInvalid(t *testing.T) {
	svc := &stubFilmService{listErr: service.ErrInvalidGenre}
	app := newFilmTestApp(svc)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/films/genre/western", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestFilmShowNotFound(t *testing.T) {
	svc := &stubFilmService{findErr: service.ErrFilmNotFound}
	app := newFilmTestApp(svc)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/films/66b1f09a9f1b2c3d4e5f6071", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFilmShowPromoNotFound(t *testing.T) {
	svc := &stubFilmService{promoErr: service.ErrPromoFilmNotFound}
	app := newFilmTestApp(svc)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/films/promo", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
