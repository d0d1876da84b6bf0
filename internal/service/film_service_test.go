package service

import (
	"movie_catalog/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filmTestFixture struct {
	svc             *FilmService
	filmRepo        *fakeFilmRepo
	commentRepo     *fakeCommentRepo
	watchlistRepo   *fakeWatchlistRepo
	userRepo        *fakeUserRepo
	notificationSvc *fakeNotificationService
}

func newFilmTestFixture(t *testing.T) *filmTestFixture {
	t.Helper()
	filmRepo := newFakeFilmRepo()
	commentRepo := newFakeCommentRepo()
	watchlistRepo := newFakeWatchlistRepo(filmRepo)
	userRepo := newFakeUserRepo()
	notificationSvc := newFakeNotificationService()

	commentSvc := NewCommentService(commentRepo, filmRepo, userRepo, notificationSvc)
	watchlistSvc := NewWatchlistService(watchlistRepo, filmRepo, userRepo)
	svc := NewFilmService(filmRepo, watchlistRepo, userRepo, commentSvc, watchlistSvc, notificationSvc)

	return &filmTestFixture{
		svc:             svc,
		filmRepo:        filmRepo,
		commentRepo:     commentRepo,
		watchlistRepo:   watchlistRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

func validCreateFilmReq(name string) *model.CreateFilmReq {
	return &model.CreateFilmReq{
		Name:             name,
		Description:      "a long enough description of the film in question",
		Genre:            model.GenreComedy,
		Released:         2014,
		RunTime:          99,
		Director:         "Wes Anderson",
		Starring:         []string{"Ralph Fiennes"},
		PosterImage:      "poster.jpg",
		BackgroundImage:  "background.jpg",
		BackgroundColor:  "#ffffff",
		PreviewVideoLink: "preview.mp4",
		VideoLink:        "film.mp4",
		PublishDate:      time.Now().UTC(),
	}
}

//------------------------------------------
//------------------------------------------

func TestCreateFilmStartsWithZeroRating(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")

	film, err := f.svc.Create(owner.ID, validCreateFilmReq("The Grand Budapest Hotel"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, film.Rating)
	assert.Equal(t, int64(0), film.CommentCount)
	assert.Equal(t, owner.ID, film.UserID)
	require.NotNil(t, film.User)
	assert.Equal(t, "owner", film.User.Username)
}

func TestCreateFilmDuplicateName(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")

	_, err := f.svc.Create(owner.ID, validCreateFilmReq("The Grand Budapest Hotel"))
	require.NoError(t, err)

	_, err = f.svc.Create(owner.ID, validCreateFilmReq("The Grand Budapest Hotel"))
	assert.ErrorIs(t, err, ErrFilmNameAlreadyExist)
}

//------------------------------------------
//------------------------------------------

func TestListAnonymousViewerGetsNoFavorites(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")
	film, err := f.svc.Create(owner.ID, validCreateFilmReq("Moonrise Kingdom"))
	require.NoError(t, err)

	_, err = f.watchlistRepo.Create(&model.WatchlistEntry{UserID: owner.ID, FilmID: film.ID})
	require.NoError(t, err)

	items, err := f.svc.List("", 0, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsFavorite)
	// anonymous listings never consult the watchlist store
	assert.Equal(t, 0, f.watchlistRepo.findFilmIdsCalls)
}

func TestListAnnotatesViewerFavorites(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")
	viewer := seedUser(t, f.userRepo, "viewer")

	favorite, err := f.svc.Create(owner.ID, validCreateFilmReq("Moonrise Kingdom"))
	require.NoError(t, err)
	_, err = f.svc.Create(owner.ID, validCreateFilmReq("Isle of Dogs"))
	require.NoError(t, err)

	_, err = f.watchlistRepo.Create(&model.WatchlistEntry{UserID: viewer.ID, FilmID: favorite.ID})
	require.NoError(t, err)

	items, err := f.svc.List("", 0, &viewer.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	flags := map[string]bool{}
	for _, item := range items {
		flags[item.Name] = item.IsFavorite
	}
	assert.True(t, flags["Moonrise Kingdom"])
	assert.False(t, flags["Isle of Dogs"])
	assert.Equal(t, 1, f.watchlistRepo.findFilmIdsCalls)
}

func TestListNormalizesGenre(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")

	comedyReq := validCreateFilmReq("The Grand Budapest Hotel")
	_, err := f.svc.Create(owner.ID, comedyReq)
	require.NoError(t, err)

	dramaReq := validCreateFilmReq("There Will Be Blood")
	dramaReq.Genre = model.GenreDrama
	_, err = f.svc.Create(owner.ID, dramaReq)
	require.NoError(t, err)

	items, err := f.svc.List("comedy", 0, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.GenreComedy, items[0].Genre)
}

func TestListRejectsUnknownGenre(t *testing.T) {
	f := newFilmTestFixture(t)

	_, err := f.svc.List("western", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidGenre)
}

func TestListSortsNewestFirstAndHonorsLimit(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")

	base := time.Now().UTC()
	for i, name := range []string{"Oldest Film Entry", "Middle Film Entry", "Newest Film Entry"} {
		req := validCreateFilmReq(name)
		req.PublishDate = base.Add(time.Duration(i) * time.Hour)
		_, err := f.svc.Create(owner.ID, req)
		require.NoError(t, err)
	}

	items, err := f.svc.List("", 2, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Newest Film Entry", items[0].Name)
	assert.Equal(t, "Middle Film Entry", items[1].Name)
}

//------------------------------------------
//------------------------------------------

func TestFindPromoPicksMostRecentlyPublished(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")

	older := validCreateFilmReq("Older Promo Film")
	older.IsPromo = true
	older.PublishDate = time.Now().UTC().Add(-time.Hour)
	_, err := f.svc.Create(owner.ID, older)
	require.NoError(t, err)

	newer := validCreateFilmReq("Newer Promo Film")
	newer.IsPromo = true
	newer.PublishDate = time.Now().UTC()
	_, err = f.svc.Create(owner.ID, newer)
	require.NoError(t, err)

	promo, err := f.svc.FindPromo()
	require.NoError(t, err)
	assert.Equal(t, "Newer Promo Film", promo.Name)
}

func TestFindPromoWithoutPromoFilm(t *testing.T) {
	f := newFilmTestFixture(t)

	_, err := f.svc.FindPromo()
	assert.ErrorIs(t, err, ErrPromoFilmNotFound)
}

//------------------------------------------
//------------------------------------------

func TestUpdateFilmOwnerOnly(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")
	other := seedUser(t, f.userRepo, "other")

	film, err := f.svc.Create(owner.ID, validCreateFilmReq("Moonrise Kingdom"))
	require.NoError(t, err)

	name := "Moonrise Kingdom Redux"
	_, err = f.svc.Update(film.ID.Hex(), other.ID, &model.UpdateFilmReq{Name: &name})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdateFilmPreservesDerivedFields(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")

	film, err := f.svc.Create(owner.ID, validCreateFilmReq("Moonrise Kingdom"))
	require.NoError(t, err)
	require.NoError(t, f.filmRepo.UpdateRating(film.ID, 8.3, 3))

	name := "Moonrise Kingdom Redux"
	updated, err := f.svc.Update(film.ID.Hex(), owner.ID, &model.UpdateFilmReq{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Moonrise Kingdom Redux", updated.Name)
	assert.Equal(t, 8.3, updated.Rating)
	assert.Equal(t, int64(3), updated.CommentCount)
}

func TestDeleteFilmCascades(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")
	viewer := seedUser(t, f.userRepo, "viewer")

	film, err := f.svc.Create(owner.ID, validCreateFilmReq("Moonrise Kingdom"))
	require.NoError(t, err)

	_, err = f.commentRepo.Create(&model.Comment{
		CommentText:   "gone soon",
		CommentRating: 6,
		FilmID:        film.ID,
		UserID:        viewer.ID,
	})
	require.NoError(t, err)
	_, err = f.watchlistRepo.Create(&model.WatchlistEntry{UserID: viewer.ID, FilmID: film.ID})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(film.ID.Hex(), owner.ID))

	_, err = f.svc.FindById(film.ID.Hex())
	assert.ErrorIs(t, err, ErrFilmNotFound)

	comments, err := f.commentRepo.FindByFilmId(film.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, comments)

	ids, err := f.watchlistRepo.FindFilmIdsByUserId(viewer.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.Len(t, f.notificationSvc.filmsDeleted, 1)
	assert.Equal(t, film.ID.Hex(), f.notificationSvc.filmsDeleted[0].FilmId)
}

func TestDeleteFilmNotOwner(t *testing.T) {
	f := newFilmTestFixture(t)
	owner := seedUser(t, f.userRepo, "owner")
	other := seedUser(t, f.userRepo, "other")

	film, err := f.svc.Create(owner.ID, validCreateFilmReq("Moonrise Kingdom"))
	require.NoError(t, err)

	err = f.svc.Delete(film.ID.Hex(), other.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = f.svc.FindById(film.ID.Hex())
	assert.NoError(t, err)
}
