package dto

import (
	"time"

	"main/model"
)

type UserResponse struct {
	UserID           string    `json:"user_id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		UserID:           user.UserID,
		Username:         user.Username,
		Email:            user.Email,
		DisplayName:      user.DisplayName,
		CreatedAt:        user.CreatedAt,
		TwoFactorEnabled: user.TwoFactorEnabled,
	}
}
