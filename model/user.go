package model

import (
	"time"
)

type User struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement;" json:"id"`
	Username     string    `gorm:"column:username;type:varchar(32);not null;" json:"username"`
	Email        string    `gorm:"column:email;type:varchar(256);not null;uniqueIndex:users_email_key;" json:"email"`
	PasswordHash string    `gorm:"column:passwordHash;type:varchar(128);not null;" json:"-"`
	PasswordSalt string    `gorm:"column:passwordSalt;type:varchar(64);not null;" json:"-"`
	AvatarPath   string    `gorm:"column:avatarPath;type:varchar(256);" json:"avatarPath"`
	CreatedAt    time.Time `gorm:"column:createdAt;not null;default:CURRENT_TIMESTAMP;" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updatedAt;not null;default:CURRENT_TIMESTAMP;" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserRes is the public profile shape, stripped of credentials.
type UserRes struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	AvatarPath string `json:"avatarPath"`
}

func (u *User) PublicProfile() *UserRes {
	return &UserRes{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		AvatarPath: u.AvatarPath,
	}
}

//---------------------------------------
//---------------------------------------

type RegisterUserReq struct {
	Username   string `json:"username" validate:"required,min=1,max=15"`
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required,min=6,max=12"`
	AvatarPath string `json:"avatarPath" validate:"omitempty,max=256,mediafile=jpg png"`
}

type LoginUserReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginUserRes struct {
	User         *UserRes `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresAt    int64    `json:"expiresAt"`
}
