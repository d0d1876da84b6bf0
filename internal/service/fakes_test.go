package service

import (
	"movie_catalog/model"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// duplicateKeyError mimics the store's unique index violation so the
// services' duplicate handling can be exercised without a running database.
func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "duplicate key error"}},
	}
}

//------------------------------------------
//------------------------------------------

type fakeFilmRepo struct {
	mutex sync.Mutex
	films map[primitive.ObjectID]*model.Film
}

func newFakeFilmRepo() *fakeFilmRepo {
	return &fakeFilmRepo{films: map[primitive.ObjectID]*model.Film{}}
}

func (r *fakeFilmRepo) Create(film *model.Film) (*model.Film, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, f := range r.films {
		if f.Name == film.Name {
			return nil, duplicateKeyError()
		}
	}

	film.ID = primitive.NewObjectID()
	film.CreatedAt = time.Now().UTC()
	film.Rating = 0
	film.CommentCount = 0
	r.films[film.ID] = film
	return film, nil
}

func (r *fakeFilmRepo) FindById(filmId primitive.ObjectID) (*model.Film, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	film, ok := r.films[filmId]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *film
	return &clone, nil
}

func (r *fakeFilmRepo) FindByName(name string) (*model.Film, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, f := range r.films {
		if f.Name == name {
			clone := *f
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeFilmRepo) Find(genre model.Genre, limit int64) ([]model.Film, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	films := make([]model.Film, 0)
	for _, f := range r.films {
		if genre != "" && f.Genre != genre {
			continue
		}
		films = append(films, *f)
	}
	sort.Slice(films, func(i, j int) bool {
		return films[i].PublishDate.After(films[j].PublishDate)
	})
	if limit > 0 && int64(len(films)) > limit {
		films = films[:limit]
	}
	return films, nil
}

func (r *fakeFilmRepo) FindPromo() (*model.Film, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var promo *model.Film
	for _, f := range r.films {
		if !f.IsPromo {
			continue
		}
		if promo == nil || f.PublishDate.After(promo.PublishDate) {
			promo = f
		}
	}
	if promo == nil {
		return nil, mongo.ErrNoDocuments
	}
	clone := *promo
	return &clone, nil
}

func (r *fakeFilmRepo) UpdateById(filmId primitive.ObjectID, update bson.M) (*model.Film, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	film, ok := r.films[filmId]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for key, value := range update {
		switch key {
		case "name":
			film.Name = value.(string)
		case "description":
			film.Description = value.(string)
		case "genre":
			film.Genre = value.(model.Genre)
		case "released":
			film.Released = value.(int)
		case "runTime":
			film.RunTime = value.(int)
		case "director":
			film.Director = value.(string)
		case "starring":
			film.Starring = value.([]string)
		case "posterImage":
			film.PosterImage = value.(string)
		case "backgroundImage":
			film.BackgroundImage = value.(string)
		case "backgroundColor":
			film.BackgroundColor = value.(string)
		case "previewVideoLink":
			film.PreviewVideoLink = value.(string)
		case "videoLink":
			film.VideoLink = value.(string)
		case "publishDate":
			film.PublishDate = value.(time.Time)
		case "isPromo":
			film.IsPromo = value.(bool)
		}
	}
	clone := *film
	return &clone, nil
}

func (r *fakeFilmRepo) UpdateRating(filmId primitive.ObjectID, rating float64, commentCount int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	film, ok := r.films[filmId]
	if !ok {
		return mongo.ErrNoDocuments
	}
	film.Rating = rating
	film.CommentCount = commentCount
	return nil
}

func (r *fakeFilmRepo) DeleteById(filmId primitive.ObjectID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.films[filmId]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.films, filmId)
	return nil
}

func (r *fakeFilmRepo) Exists(filmId primitive.ObjectID) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, ok := r.films[filmId]
	return ok, nil
}

//------------------------------------------
//------------------------------------------

type fakeCommentRepo struct {
	mutex    sync.Mutex
	comments []model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Create(comment *model.Comment) (*model.Comment, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now().UTC()
	r.comments = append(r.comments, *comment)
	return comment, nil
}

func (r *fakeCommentRepo) FindByFilmId(filmId primitive.ObjectID, limit int64) ([]model.Comment, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	comments := make([]model.Comment, 0)
	for i := range r.comments {
		if r.comments[i].FilmID == filmId {
			comments = append(comments, r.comments[i])
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	if limit > 0 && int64(len(comments)) > limit {
		comments = comments[:limit]
	}
	return comments, nil
}

func (r *fakeCommentRepo) AggregateFilmRating(filmId primitive.ObjectID) (*model.FilmRatingAggregate, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	aggregate := &model.FilmRatingAggregate{}
	sum := 0
	for i := range r.comments {
		if r.comments[i].FilmID == filmId {
			aggregate.CommentCount++
			sum += r.comments[i].CommentRating
		}
	}
	if aggregate.CommentCount > 0 {
		aggregate.Rating = float64(sum) / float64(aggregate.CommentCount)
	}
	return aggregate, nil
}

func (r *fakeCommentRepo) DeleteByFilmId(filmId primitive.ObjectID) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	kept := r.comments[:0]
	var deleted int64
	for i := range r.comments {
		if r.comments[i].FilmID == filmId {
			deleted++
			continue
		}
		kept = append(kept, r.comments[i])
	}
	r.comments = kept
	return deleted, nil
}

//------------------------------------------
//------------------------------------------

type fakeWatchlistRepo struct {
	mutex   sync.Mutex
	entries []model.WatchlistEntry
	films   *fakeFilmRepo

	findFilmIdsCalls int
	raceOnNextCreate bool
}

func newFakeWatchlistRepo(films *fakeFilmRepo) *fakeWatchlistRepo {
	return &fakeWatchlistRepo{films: films}
}

func (r *fakeWatchlistRepo) Create(entry *model.WatchlistEntry) (*model.WatchlistEntry, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// raceOnNextCreate simulates a concurrent toggle winning the insert:
	// the entry appears in the store but this caller sees the unique index
	// rejection.
	if r.raceOnNextCreate {
		r.raceOnNextCreate = false
		racing := model.WatchlistEntry{
			ID:        primitive.NewObjectID(),
			UserID:    entry.UserID,
			FilmID:    entry.FilmID,
			CreatedAt: time.Now().UTC(),
		}
		r.entries = append(r.entries, racing)
		return nil, duplicateKeyError()
	}

	for i := range r.entries {
		if r.entries[i].UserID == entry.UserID && r.entries[i].FilmID == entry.FilmID {
			return nil, duplicateKeyError()
		}
	}

	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	r.entries = append(r.entries, *entry)
	return entry, nil
}

func (r *fakeWatchlistRepo) FindByUserIdAndFilmId(userId int64, filmId primitive.ObjectID) (*model.WatchlistEntry, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i := range r.entries {
		if r.entries[i].UserID == userId && r.entries[i].FilmID == filmId {
			clone := r.entries[i]
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeWatchlistRepo) FindByUserId(userId int64) ([]model.WatchlistEntryRes, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	result := make([]model.WatchlistEntryRes, 0)
	for i := range r.entries {
		if r.entries[i].UserID != userId {
			continue
		}
		res := model.WatchlistEntryRes{
			ID:     r.entries[i].ID,
			UserID: r.entries[i].UserID,
		}
		if film, err := r.films.FindById(r.entries[i].FilmID); err == nil {
			res.Film = &model.FilmRes{Film: *film}
		}
		result = append(result, res)
	}
	return result, nil
}

func (r *fakeWatchlistRepo) FindFilmIdsByUserId(userId int64) ([]primitive.ObjectID, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.findFilmIdsCalls++
	ids := make([]primitive.ObjectID, 0)
	for i := range r.entries {
		if r.entries[i].UserID == userId {
			ids = append(ids, r.entries[i].FilmID)
		}
	}
	return ids, nil
}

func (r *fakeWatchlistRepo) Delete(userId int64, filmId primitive.ObjectID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	kept := r.entries[:0]
	for i := range r.entries {
		if r.entries[i].UserID == userId && r.entries[i].FilmID == filmId {
			continue
		}
		kept = append(kept, r.entries[i])
	}
	r.entries = kept
	return nil
}

func (r *fakeWatchlistRepo) DeleteByFilmId(filmId primitive.ObjectID) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	kept := r.entries[:0]
	var deleted int64
	for i := range r.entries {
		if r.entries[i].FilmID == filmId {
			deleted++
			continue
		}
		kept = append(kept, r.entries[i])
	}
	r.entries = kept
	return deleted, nil
}

//------------------------------------------
//------------------------------------------

type fakeUserRepo struct {
	mutex  sync.Mutex
	nextId int64
	users  map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}

	r.nextId++
	user.ID = r.nextId
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindById(userId int64) (*model.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	user, ok := r.users[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByIds(userIds []int64) ([]model.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	users := make([]model.User, 0, len(userIds))
	for _, id := range userIds {
		if u, ok := r.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateAvatar(userId int64, avatarPath string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	user, ok := r.users[userId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.AvatarPath = avatarPath
	return nil
}

//------------------------------------------
//------------------------------------------

type fakeNotificationService struct {
	mutex           sync.Mutex
	commentsCreated []CommentCreatedEvent
	filmsDeleted    []FilmDeletedEvent
}

func newFakeNotificationService() *fakeNotificationService {
	return &fakeNotificationService{}
}

func (s *fakeNotificationService) PublishCommentCreated(comment *model.Comment, filmOwnerId int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.commentsCreated = append(s.commentsCreated, CommentCreatedEvent{
		CommentId:   comment.ID.Hex(),
		FilmId:      comment.FilmID.Hex(),
		AuthorId:    comment.UserID,
		FilmOwnerId: filmOwnerId,
		Rating:      comment.CommentRating,
		CreatedAt:   comment.CreatedAt,
	})
}

func (s *fakeNotificationService) PublishFilmDeleted(film *model.Film) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.filmsDeleted = append(s.filmsDeleted, FilmDeletedEvent{
		FilmId:  film.ID.Hex(),
		Name:    film.Name,
		OwnerId: film.UserID,
	})
}

func (s *fakeNotificationService) Close() {}
