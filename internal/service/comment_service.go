package service

import (
	"errors"
	"fmt"
	"math"
	"movie_catalog/configs"
	"movie_catalog/internal/repository"
	"movie_catalog/model"
	errorHandler "movie_catalog/pkg/error"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ICommentService interface {
	Create(userId int64, req *model.CreateCommentReq) (*model.CommentRes, error)
	FindByFilmId(filmId string) ([]model.CommentRes, error)
	RecomputeFilmRating(filmId primitive.ObjectID) error
	DeleteByFilmId(filmId primitive.ObjectID) (int64, error)
}

type CommentService struct {
	commentRepo     repository.ICommentRepository
	filmRepo        repository.IFilmRepository
	userRepo        repository.IUserRepository
	notificationSvc INotificationService
}

func NewCommentService(
	commentRepo repository.ICommentRepository,
	filmRepo repository.IFilmRepository,
	userRepo repository.IUserRepository,
	notificationSvc INotificationService,
) *CommentService {
	return &CommentService{
		commentRepo:     commentRepo,
		filmRepo:        filmRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

var (
	ErrFilmNotFound = errors.New("film not found")
)

//------------------------------------------
//------------------------------------------

// Create persists the comment and synchronously recomputes the film's
// aggregate rating before returning, so an immediate re-fetch of the film
// already sees the new numbers. An aggregation failure is surfaced but the
// comment stays persisted, there is no cross-collection transaction here.
func (s *CommentService) Create(userId int64, req *model.CreateCommentReq) (*model.CommentRes, error) {
	filmId, err := primitive.ObjectIDFromHex(req.FilmID)
	if err != nil {
		return nil, ErrFilmNotFound
	}

	film, err := s.filmRepo.FindById(filmId)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		CommentText:   req.CommentText,
		CommentRating: req.CommentRating,
		FilmID:        filmId,
		UserID:        userId,
		CommentDate:   req.CommentDate,
	}
	comment, err = s.commentRepo.Create(comment)
	if err != nil {
		return nil, err
	}

	if err := s.RecomputeFilmRating(filmId); err != nil {
		errMsg := fmt.Sprintf("Error on recomputing rating of film %s: %v", filmId.Hex(), err)
		errorHandler.SaveError(errMsg, err)
		return nil, err
	}

	s.notificationSvc.PublishCommentCreated(comment, film.UserID)

	res := &model.CommentRes{Comment: *comment}
	if author, err := s.userRepo.FindById(userId); err == nil {
		res.User = author.PublicProfile()
	}
	return res, nil
}

// RecomputeFilmRating derives commentCount and rating from the film's
// current comment set and writes them back. Idempotent: re-running it with
// no comment changes produces the same film state.
func (s *CommentService) RecomputeFilmRating(filmId primitive.ObjectID) error {
	aggregate, err := s.commentRepo.AggregateFilmRating(filmId)
	if err != nil {
		return err
	}

	return s.filmRepo.UpdateRating(filmId, roundRating(aggregate.Rating), aggregate.CommentCount)
}

// roundRating rounds half away from zero to one decimal, so [7,8,10]
// averages to 8.3.
func roundRating(rating float64) float64 {
	return math.Round(rating*10) / 10
}

//------------------------------------------
//------------------------------------------

func (s *CommentService) FindByFilmId(filmId string) ([]model.CommentRes, error) {
	id, err := primitive.ObjectIDFromHex(filmId)
	if err != nil {
		return nil, ErrFilmNotFound
	}

	exists, err := s.filmRepo.Exists(id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrFilmNotFound
	}

	comments, err := s.commentRepo.FindByFilmId(id, configs.GetDbConfigs().MaxCommentCount)
	if err != nil {
		return nil, err
	}

	authors, err := s.loadAuthors(comments)
	if err != nil {
		return nil, err
	}

	result := make([]model.CommentRes, 0, len(comments))
	for i := range comments {
		res := model.CommentRes{Comment: comments[i]}
		if author, ok := authors[comments[i].UserID]; ok {
			res.User = author
		}
		result = append(result, res)
	}
	return result, nil
}

// loadAuthors bulk-fetches the distinct author profiles in one query.
func (s *CommentService) loadAuthors(comments []model.Comment) (map[int64]*model.UserRes, error) {
	if len(comments) == 0 {
		return map[int64]*model.UserRes{}, nil
	}

	seen := make(map[int64]bool, len(comments))
	userIds := make([]int64, 0, len(comments))
	for i := range comments {
		if !seen[comments[i].UserID] {
			seen[comments[i].UserID] = true
			userIds = append(userIds, comments[i].UserID)
		}
	}

	users, err := s.userRepo.FindByIds(userIds)
	if err != nil {
		return nil, err
	}

	authors := make(map[int64]*model.UserRes, len(users))
	for i := range users {
		authors[users[i].ID] = users[i].PublicProfile()
	}
	return authors, nil
}

//------------------------------------------
//------------------------------------------

// DeleteByFilmId bulk-removes a film's comments. Only the film deletion
// cascade calls this; no route exposes it for a live film.
func (s *CommentService) DeleteByFilmId(filmId primitive.ObjectID) (int64, error) {
	return s.commentRepo.DeleteByFilmId(filmId)
}
