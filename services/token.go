package services

import (
	"errors"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken creates a short-lived access token for the user
func GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    "access",
		"exp":     time.Now().Add(time.Duration(utils.JWTExpirationTime) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// GenerateRefreshToken creates a long-lived refresh token for the user
func GenerateRefreshToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    "refresh",
		"exp":     time.Now().Add(time.Duration(utils.RefreshTokenExpirationTime) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ValidateRefreshToken parses a refresh token and returns the user ID it
// was issued for
func ValidateRefreshToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", errors.New("unexpected signing method")
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.New("token has expired")
		}
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}

	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", errors.New("invalid token type")
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("missing user ID in token")
	}
	return userID, nil
}
