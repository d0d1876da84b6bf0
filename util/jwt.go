package util

import (
	"fmt"
	"movie_catalog/configs"
	"movie_catalog/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type MyJwtClaims struct {
	UserId      int64  `json:"userId"`
	Username    string `json:"username"`
	GeneratedAt int64  `json:"generatedAt"`
	ExpiresAt   int64  `json:"expiresAt"`
	jwt.RegisteredClaims
}

type TokenDetail struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64
}

func CreateTokens(user *model.User) (*TokenDetail, error) {
	now := time.Now()
	accessExpire := now.Add(time.Duration(configs.GetConfigs().AccessTokenExpireHour) * time.Hour)
	refreshExpire := now.AddDate(0, 0, configs.GetConfigs().RefreshTokenExpireDay)

	accessClaims := MyJwtClaims{
		UserId:      user.ID,
		Username:    user.Username,
		GeneratedAt: now.UnixMilli(),
		ExpiresAt:   accessExpire.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpire),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(configs.GetConfigs().AccessTokenSecret))
	if err != nil {
		return nil, err
	}

	refreshClaims := MyJwtClaims{
		UserId:      user.ID,
		Username:    user.Username,
		GeneratedAt: now.UnixMilli(),
		ExpiresAt:   refreshExpire.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExpire),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(configs.GetConfigs().RefreshTokenSecret))
	if err != nil {
		return nil, err
	}

	return &TokenDetail{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpire.UnixMilli(),
	}, nil
}

func VerifyToken(tokenString string) (*jwt.Token, *MyJwtClaims, error) {
	claims := MyJwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signature method")
		}
		return []byte(configs.GetConfigs().AccessTokenSecret), nil
	})

	if err != nil {
		return nil, nil, err
	}

	return token, &claims, nil
}

func VerifyRefreshToken(tokenString string) (*jwt.Token, *MyJwtClaims, error) {
	claims := MyJwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signature method")
		}
		return []byte(configs.GetConfigs().RefreshTokenSecret), nil
	})

	if err != nil {
		return nil, nil, err
	}

	return token, &claims, nil
}
