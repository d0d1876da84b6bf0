package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"movie_catalog/configs"
	"movie_catalog/internal/repository"
	"movie_catalog/model"
	errorHandler "movie_catalog/pkg/error"
	"movie_catalog/util"
	"os"
	"path/filepath"
	"time"

	"github.com/badoux/checkmail"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IUserService interface {
	Register(req *model.RegisterUserReq) (*model.UserRes, error)
	Login(req *model.LoginUserReq) (*model.LoginUserRes, error)
	Logout(refreshToken string, expiresAt int64) error
	FindById(userId int64) (*model.UserRes, error)
	SaveAvatar(userId int64, file *multipart.FileHeader) (string, error)
}

type UserService struct {
	userRepo repository.IUserRepository
}

func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

var (
	ErrEmailAlreadyExist = errors.New("email already exists")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserPassNotMatch  = errors.New("email and password do not match")
	ErrInvalidImageFile  = errors.New("invalid image file")
)

//------------------------------------------
//------------------------------------------

func (s *UserService) Register(req *model.RegisterUserReq) (*model.UserRes, error) {
	if err := checkmail.ValidateFormat(req.Email); err != nil {
		return nil, ErrInvalidEmail
	}

	hash, salt, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		PasswordSalt: salt,
		AvatarPath:   req.AvatarPath,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExist
		}
		return nil, err
	}

	return user.PublicProfile(), nil
}

func (s *UserService) Login(req *model.LoginUserReq) (*model.LoginUserRes, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserPassNotMatch
		}
		return nil, err
	}

	if !util.VerifyPassword(req.Password, user.PasswordHash, user.PasswordSalt) {
		return nil, ErrUserPassNotMatch
	}

	tokens, err := util.CreateTokens(user)
	if err != nil {
		return nil, err
	}

	return &model.LoginUserRes{
		User:         user.PublicProfile(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}, nil
}

// Logout blacklists the refresh token in redis until it would expire anyway.
func (s *UserService) Logout(refreshToken string, expiresAt int64) error {
	remaining := time.Until(time.UnixMilli(expiresAt))
	if remaining <= 0 {
		return nil
	}
	return setJwtBlacklistCache(refreshToken, "logout", remaining)
}

func (s *UserService) FindById(userId int64) (*model.UserRes, error) {
	user, err := s.userRepo.FindById(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.PublicProfile(), nil
}

//------------------------------------------
//------------------------------------------

// SaveAvatar decodes the uploaded image, scales it down to a square
// thumbnail and stores it under a generated name. jpg/png only.
func (s *UserService) SaveAvatar(userId int64, file *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrInvalidImageFile
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrInvalidImageFile
	}

	size := configs.GetDbConfigs().AvatarThumbnailSize
	thumbnail := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	uploadDir := configs.GetConfigs().UploadDirectory
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + ".jpg"
	if err := imaging.Save(thumbnail, filepath.Join(uploadDir, filename)); err != nil {
		errMsg := fmt.Sprintf("Error on saving avatar of user %d: %v", userId, err)
		errorHandler.SaveError(errMsg, err)
		return "", err
	}

	if err := s.userRepo.UpdateAvatar(userId, filename); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return filename, nil
}
