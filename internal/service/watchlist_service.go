package service

import (
	"errors"
	"movie_catalog/internal/repository"
	"movie_catalog/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type IWatchlistService interface {
	Toggle(userId int64, filmId string) (*model.ToggleWatchlistRes, error)
	FindByUserId(userId int64) ([]model.WatchlistEntryRes, error)
	DeleteByFilmId(filmId primitive.ObjectID) (int64, error)
}

type WatchlistService struct {
	watchlistRepo repository.IWatchlistRepository
	filmRepo      repository.IFilmRepository
	userRepo      repository.IUserRepository
}

func NewWatchlistService(
	watchlistRepo repository.IWatchlistRepository,
	filmRepo repository.IFilmRepository,
	userRepo repository.IUserRepository,
) *WatchlistService {
	return &WatchlistService{
		watchlistRepo: watchlistRepo,
		filmRepo:      filmRepo,
		userRepo:      userRepo,
	}
}

//------------------------------------------
//------------------------------------------

// Toggle adds the bookmark if absent and removes it if present. Two
// concurrent toggles can both read "absent"; the unique index rejects the
// second insert and that rejection is treated as "already exists", not as a
// failure.
func (s *WatchlistService) Toggle(userId int64, filmId string) (*model.ToggleWatchlistRes, error) {
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

	if _, err := s.watchlistRepo.FindByUserIdAndFilmId(userId, id); err == nil {
		if err := s.watchlistRepo.Delete(userId, id); err != nil {
			return nil, err
		}
		return &model.ToggleWatchlistRes{Removed: true}, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	entry := &model.WatchlistEntry{UserID: userId, FilmID: id}
	entry, err = s.watchlistRepo.Create(entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			existing, findErr := s.watchlistRepo.FindByUserIdAndFilmId(userId, id)
			if findErr != nil {
				return nil, findErr
			}
			entry = existing
		} else {
			return nil, err
		}
	}

	populated, err := s.populate(entry)
	if err != nil {
		return nil, err
	}
	return &model.ToggleWatchlistRes{Removed: false, Entry: populated}, nil
}

func (s *WatchlistService) FindByUserId(userId int64) ([]model.WatchlistEntryRes, error) {
	entries, err := s.watchlistRepo.FindByUserId(userId)
	if err != nil {
		return nil, err
	}

	owners, err := s.loadFilmOwners(entries)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Film == nil {
			continue
		}
		if owner, ok := owners[entries[i].Film.UserID]; ok {
			entries[i].Film.User = owner
		}
	}
	return entries, nil
}

// DeleteByFilmId bulk-removes a film's bookmarks; film deletion cascade only.
func (s *WatchlistService) DeleteByFilmId(filmId primitive.ObjectID) (int64, error) {
	return s.watchlistRepo.DeleteByFilmId(filmId)
}

//------------------------------------------
//------------------------------------------

// populate fills the entry with its film and the film's owning user.
func (s *WatchlistService) populate(entry *model.WatchlistEntry) (*model.WatchlistEntryRes, error) {
	film, err := s.filmRepo.FindById(entry.FilmID)
	if err != nil {
		return nil, err
	}

	filmRes := &model.FilmRes{Film: *film}
	if owner, err := s.userRepo.FindById(film.UserID); err == nil {
		filmRes.User = owner.PublicProfile()
	}

	return &model.WatchlistEntryRes{
		ID:     entry.ID,
		UserID: entry.UserID,
		Film:   filmRes,
	}, nil
}

// loadFilmOwners bulk-fetches the owner profiles of the populated films.
func (s *WatchlistService) loadFilmOwners(entries []model.WatchlistEntryRes) (map[int64]*model.UserRes, error) {
	if len(entries) == 0 {
		return map[int64]*model.UserRes{}, nil
	}

	seen := make(map[int64]bool, len(entries))
	ownerIds := make([]int64, 0, len(entries))
	for i := range entries {
		if entries[i].Film == nil {
			continue
		}
		ownerId := entries[i].Film.UserID
		if !seen[ownerId] {
			seen[ownerId] = true
			ownerIds = append(ownerIds, ownerId)
		}
	}
	if len(ownerIds) == 0 {
		return map[int64]*model.UserRes{}, nil
	}

	users, err := s.userRepo.FindByIds(ownerIds)
	if err != nil {
		return nil, err
	}

	owners := make(map[int64]*model.UserRes, len(users))
	for i := range users {
		owners[users[i].ID] = users[i].PublicProfile()
	}
	return owners, nil
}
