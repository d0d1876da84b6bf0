package service

import (
	"context"
	"encoding/json"
	"fmt"
	"movie_catalog/configs"
	"movie_catalog/db/redis"
	"movie_catalog/model"
	errorHandler "movie_catalog/pkg/error"
	"time"
)

const (
	jwtBlacklistCachePrefix = "jwtKey:"
	promoFilmCacheKey       = "film:promo"
)

//------------------------------------------
//------------------------------------------

func GetJwtBlacklistCache(key string) (string, error) {
	result, err := redis.GetRedis(context.Background(), jwtBlacklistCachePrefix+key)
	return result, err
}

func setJwtBlacklistCache(key string, value string, duration time.Duration) error {
	err := redis.SetRedis(context.Background(), jwtBlacklistCachePrefix+key, value, duration)
	if err != nil {
		errorMessage := fmt.Sprintf("Redis Error on saving jwt: %v", err)
		errorHandler.SaveError(errorMessage, err)
	}
	return err
}

//------------------------------------------
//------------------------------------------

// GetPromoFilmCache returns the cached promo film or nil. Cache failures
// degrade to a store read, they never fail the request.
func GetPromoFilmCache() *model.FilmRes {
	result, err := redis.GetRedis(context.Background(), promoFilmCacheKey)
	if err != nil || result == "" {
		return nil
	}

	var film model.FilmRes
	if err := json.Unmarshal([]byte(result), &film); err != nil {
		return nil
	}
	return &film
}

func SetPromoFilmCache(film *model.FilmRes) {
	jsonData, err := json.Marshal(film)
	if err != nil {
		errorMessage := fmt.Sprintf("Redis Error on saving promo film: %v", err)
		errorHandler.SaveError(errorMessage, err)
		return
	}

	duration := time.Duration(configs.GetDbConfigs().PromoCacheDurationMin) * time.Minute
	if err := redis.SetRedis(context.Background(), promoFilmCacheKey, jsonData, duration); err != nil {
		errorMessage := fmt.Sprintf("Redis Error on saving promo film: %v", err)
		errorHandler.SaveError(errorMessage, err)
	}
}

func DeletePromoFilmCache() {
	if err := redis.DelRedis(context.Background(), promoFilmCacheKey); err != nil {
		errorMessage := fmt.Sprintf("Redis Error on deleting promo film: %v", err)
		errorHandler.SaveError(errorMessage, err)
	}
}
