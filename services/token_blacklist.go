package services

import (
	"context"
	"fmt"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

type RedisTokenBlacklist struct {
	Client *redis.Client
}

// TokenBlacklist is the process-wide instance, set during startup
var TokenBlacklist *RedisTokenBlacklist

// NewTokenBlacklist creates a new Redis-backed token blacklist
func NewTokenBlacklist(redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RedisTokenBlacklist{Client: client}, nil
}

// BlacklistTokens adds both access and refresh tokens to the blacklist
func BlacklistTokens(accessToken, refreshToken string) error {
	if TokenBlacklist == nil {
		return fmt.Errorf("token blacklist not initialized")
	}

	if err := TokenBlacklist.blacklistSingleToken(accessToken); err != nil {
		return fmt.Errorf("failed to blacklist access token: %v", err)
	}
	if err := TokenBlacklist.blacklistSingleToken(refreshToken); err != nil {
		return fmt.Errorf("failed to blacklist refresh token: %v", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether a token has been invalidated
func IsTokenBlacklisted(tokenString string) bool {
	if TokenBlacklist == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	exists, err := TokenBlacklist.Client.Exists(ctx, blacklistKey(tokenString)).Result()
	if err != nil {
		utils.TrackError("cache", "blacklist_lookup_failed")
		return false
	}
	return exists > 0
}

// blacklistSingleToken keeps a token on the blacklist until its expiration
func (tb *RedisTokenBlacklist) blacklistSingleToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		// Expired or malformed tokens don't need blacklisting
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil
	}

	ttl := time.Until(time.Unix(int64(exp), 0))
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return tb.Client.Set(ctx, blacklistKey(tokenString), "1", ttl).Err()
}

func blacklistKey(tokenString string) string {
	return "blacklist:" + utils.HashString(tokenString)
}
