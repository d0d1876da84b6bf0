package service

import (
	"errors"
	"fmt"
	"movie_catalog/configs"
	"movie_catalog/internal/repository"
	"movie_catalog/model"
	errorHandler "movie_catalog/pkg/error"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type IFilmService interface {
	Create(userId int64, req *model.CreateFilmReq) (*model.FilmRes, error)
	FindById(filmId string) (*model.FilmRes, error)
	List(genre string, limit int64, viewerId *int64) ([]model.FilmListItem, error)
	FindPromo() (*model.FilmRes, error)
	Update(filmId string, userId int64, req *model.UpdateFilmReq) (*model.FilmRes, error)
	Delete(filmId string, userId int64) error
}

type FilmService struct {
	filmRepo        repository.IFilmRepository
	watchlistRepo   repository.IWatchlistRepository
	userRepo        repository.IUserRepository
	commentSvc      ICommentService
	watchlistSvc    IWatchlistService
	notificationSvc INotificationService
}

func NewFilmService(
	filmRepo repository.IFilmRepository,
	watchlistRepo repository.IWatchlistRepository,
	userRepo repository.IUserRepository,
	commentSvc ICommentService,
	watchlistSvc IWatchlistService,
	notificationSvc INotificationService,
) *FilmService {
	return &FilmService{
		filmRepo:        filmRepo,
		watchlistRepo:   watchlistRepo,
		userRepo:        userRepo,
		commentSvc:      commentSvc,
		watchlistSvc:    watchlistSvc,
		notificationSvc: notificationSvc,
	}
}

var (
	ErrFilmNameAlreadyExist = errors.New("film name already exists")
	ErrPromoFilmNotFound    = errors.New("promo film not found")
	ErrInvalidGenre         = errors.New("invalid genre")
	ErrNotOwner             = errors.New("resource belongs to another user")
)

//------------------------------------------
//------------------------------------------

func (s *FilmService) Create(userId int64, req *model.CreateFilmReq) (*model.FilmRes, error) {
	if _, err := s.filmRepo.FindByName(req.Name); err == nil {
		return nil, ErrFilmNameAlreadyExist
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	film := &model.Film{
		Name:             req.Name,
		Description:      req.Description,
		Genre:            req.Genre,
		Released:         req.Released,
		RunTime:          req.RunTime,
		Director:         req.Director,
		Starring:         req.Starring,
		PosterImage:      req.PosterImage,
		BackgroundImage:  req.BackgroundImage,
		BackgroundColor:  req.BackgroundColor,
		PreviewVideoLink: req.PreviewVideoLink,
		VideoLink:        req.VideoLink,
		PublishDate:      req.PublishDate,
		IsPromo:          req.IsPromo,
		UserID:           userId,
	}

	film, err := s.filmRepo.Create(film)
	if err != nil {
		// unique name index closes the check-then-insert race
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrFilmNameAlreadyExist
		}
		return nil, err
	}

	if film.IsPromo {
		DeletePromoFilmCache()
	}

	return s.fillOwner(film), nil
}

func (s *FilmService) FindById(filmId string) (*model.FilmRes, error) {
	id, err := primitive.ObjectIDFromHex(filmId)
	if err != nil {
		return nil, ErrFilmNotFound
	}

	film, err := s.filmRepo.FindById(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	return s.fillOwner(film), nil
}

//------------------------------------------
//------------------------------------------

// List produces the listing shape. The viewer's watchlist is fetched once
// and turned into a membership set; anonymous viewers get isFavorite=false
// across the board without touching the watchlist store.
func (s *FilmService) List(genre string, limit int64, viewerId *int64) ([]model.FilmListItem, error) {
	normalized := model.Genre("")
	if genre != "" {
		normalized = model.NormalizeGenre(genre)
		if !model.IsValidGenre(normalized) {
			return nil, ErrInvalidGenre
		}
	}

	if limit <= 0 {
		limit = configs.GetDbConfigs().DefaultFilmCount
	}

	films, err := s.filmRepo.Find(normalized, limit)
	if err != nil {
		return nil, err
	}

	favorites := map[primitive.ObjectID]bool{}
	if viewerId != nil {
		filmIds, err := s.watchlistRepo.FindFilmIdsByUserId(*viewerId)
		if err != nil {
			return nil, err
		}
		for _, id := range filmIds {
			favorites[id] = true
		}
	}

	result := make([]model.FilmListItem, 0, len(films))
	for i := range films {
		result = append(result, model.FilmListItem{
			Film:       films[i],
			IsFavorite: favorites[films[i].ID],
		})
	}
	return result, nil
}

// FindPromo returns the promoted film, cached for a few minutes. If several
// films carry the flag the most recently published one wins.
func (s *FilmService) FindPromo() (*model.FilmRes, error) {
	if cached := GetPromoFilmCache(); cached != nil {
		return cached, nil
	}

	film, err := s.filmRepo.FindPromo()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPromoFilmNotFound
		}
		return nil, err
	}

	res := s.fillOwner(film)
	SetPromoFilmCache(res)
	return res, nil
}

//------------------------------------------
//------------------------------------------

func (s *FilmService) Update(filmId string, userId int64, req *model.UpdateFilmReq) (*model.FilmRes, error) {
	id, err := primitive.ObjectIDFromHex(filmId)
	if err != nil {
		return nil, ErrFilmNotFound
	}

	film, err := s.filmRepo.FindById(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	if film.UserID != userId {
		return nil, ErrNotOwner
	}

	update := buildFilmUpdate(req)
	if len(update) == 0 {
		return s.fillOwner(film), nil
	}

	updated, err := s.filmRepo.UpdateById(id, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrFilmNameAlreadyExist
		}
		return nil, err
	}

	DeletePromoFilmCache()
	return s.fillOwner(updated), nil
}

// buildFilmUpdate maps the set fields of a patch request onto a $set
// document. rating and commentCount are derived and deliberately absent.
func buildFilmUpdate(req *model.UpdateFilmReq) bson.M {
	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Genre != nil {
		update["genre"] = *req.Genre
	}
	if req.Released != nil {
		update["released"] = *req.Released
	}
	if req.RunTime != nil {
		update["runTime"] = *req.RunTime
	}
	if req.Director != nil {
		update["director"] = *req.Director
	}
	if req.Starring != nil {
		update["starring"] = req.Starring
	}
	if req.PosterImage != nil {
		update["posterImage"] = *req.PosterImage
	}
	if req.BackgroundImage != nil {
		update["backgroundImage"] = *req.BackgroundImage
	}
	if req.BackgroundColor != nil {
		update["backgroundColor"] = *req.BackgroundColor
	}
	if req.PreviewVideoLink != nil {
		update["previewVideoLink"] = *req.PreviewVideoLink
	}
	if req.VideoLink != nil {
		update["videoLink"] = *req.VideoLink
	}
	if req.PublishDate != nil {
		update["publishDate"] = *req.PublishDate
	}
	if req.IsPromo != nil {
		update["isPromo"] = *req.IsPromo
	}
	return update
}

// Delete removes the film and cascades to its comments and watchlist
// entries. Comment deletion here never triggers a rating recompute, the film
// record is gone at that point.
func (s *FilmService) Delete(filmId string, userId int64) error {
	id, err := primitive.ObjectIDFromHex(filmId)
	if err != nil {
		return ErrFilmNotFound
	}

	film, err := s.filmRepo.FindById(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrFilmNotFound
		}
		return err
	}
	if film.UserID != userId {
		return ErrNotOwner
	}

	if err := s.filmRepo.DeleteById(id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrFilmNotFound
		}
		return err
	}

	if _, err := s.commentSvc.DeleteByFilmId(id); err != nil {
		errMsg := fmt.Sprintf("Error on cascade deleting comments of film %s: %v", id.Hex(), err)
		errorHandler.SaveError(errMsg, err)
		return err
	}
	if _, err := s.watchlistSvc.DeleteByFilmId(id); err != nil {
		errMsg := fmt.Sprintf("Error on cascade deleting watchlist entries of film %s: %v", id.Hex(), err)
		errorHandler.SaveError(errMsg, err)
		return err
	}

	DeletePromoFilmCache()
	s.notificationSvc.PublishFilmDeleted(film)
	return nil
}

//------------------------------------------
//------------------------------------------

func (s *FilmService) fillOwner(film *model.Film) *model.FilmRes {
	res := &model.FilmRes{Film: *film}
	if owner, err := s.userRepo.FindById(film.UserID); err == nil {
		res.User = owner.PublicProfile()
	}
	return res
}
