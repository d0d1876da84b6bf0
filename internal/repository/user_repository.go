package repository

import (
	"movie_catalog/model"

	"gorm.io/gorm"
)

type IUserRepository interface {
	Create(user *model.User) error
	FindById(userId int64) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByIds(userIds []int64) ([]model.User, error)
	UpdateAvatar(userId int64, avatarPath string) error
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

//------------------------------------------
//------------------------------------------

func (r *UserRepository) Create(user *model.User) error {
	// TranslateError maps the unique email violation to gorm.ErrDuplicatedKey
	return r.db.Create(user).Error
}

func (r *UserRepository) FindById(userId int64) (*model.User, error) {
	var user model.User
	err := r.db.
		Model(&model.User{}).
		Where("id = ?", userId).
		First(&user).
		Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.
		Model(&model.User{}).
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByIds(userIds []int64) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Model(&model.User{}).
		Where("id in ?", userIds).
		Find(&users).
		Error
	return users, err
}

func (r *UserRepository) UpdateAvatar(userId int64, avatarPath string) error {
	result := r.db.
		Model(&model.User{}).
		Where("id = ?", userId).
		Update("avatarPath", avatarPath)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
