package cache

import (
	"context"
	"fmt"
	"time"

	"Ieum/config"
	"Ieum/storage/redis"
)

const tokenPrefix = "token"

// SetRefreshToken stores the user's current refresh token.
// Key: ieum:token:refresh:{user_id}
func SetRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	key := redis.Key(tokenPrefix, "refresh", fmt.Sprintf("%d", userID))
	ttl := time.Duration(config.Cfg.JWTRefreshDays) * 24 * time.Hour

	return redis.Client().Set(ctx, key, refreshToken, ttl).Err()
}

func GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	key := redis.Key(tokenPrefix, "refresh", fmt.Sprintf("%d", userID))
	return redis.Client().Get(ctx, key).Result()
}

// DeleteRefreshToken invalidates the stored refresh token on logout.
func DeleteRefreshToken(ctx context.Context, userID int64) error {
	key := redis.Key(tokenPrefix, "refresh", fmt.Sprintf("%d", userID))
	return redis.Client().Del(ctx, key).Err()
}

// ValidateRefreshTokenExists reports whether the presented refresh token
// matches the stored one.
func ValidateRefreshTokenExists(ctx context.Context, userID int64, refreshToken string) bool {
	storedToken, err := GetRefreshToken(ctx, userID)
	if err != nil {
		return false
	}
	return storedToken == refreshToken
}
