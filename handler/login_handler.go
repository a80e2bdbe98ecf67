package handler

import (
	"log"

	"main/middleware"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

const MaxActiveSessions = 5

func LoginHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	var loginReq model.LoginRequest
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	userService := &usecase.UserService{UsersRepo: userRepo}

	user, err := userService.FindUserByUsername(c.Request.Context(), loginReq.Username)
	if err != nil {
		utils.TrackError("auth", "user_lookup")
		utils.TrackAuthAttempt("failure", "invalid_username")
		utils.Unauthorized(c, "Invalid username")
		return
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "user_not_found")
		utils.Unauthorized(c, "Invalid username")
		return
	}

	checkPassword, err := services.VerifyPassword(user.Password, loginReq.Password)
	if err != nil || !checkPassword {
		utils.TrackAuthAttempt("failure", "invalid_password")
		utils.Unauthorized(c, "Incorrect Password")
		return
	}

	if user.TwoFactorEnabled {
		if loginReq.TwoFactorCode == "" {
			utils.TrackAuthAttempt("pending", "2fa_required")
			utils.Success(c, gin.H{
				"requires_2fa": true,
				"message":      "2FA code required",
				"user_id":      user.UserID,
			})
			return
		}
		if !totp.Validate(loginReq.TwoFactorCode, user.TwoFactorSecret) {
			utils.TrackAuthAttempt("failure", "invalid_2fa")
			utils.Unauthorized(c, "Invalid 2FA code")
			return
		}
		utils.TrackAuthAttempt("success", "2fa")
	}

	activeCount, err := sessionRepo.CountActiveSessions(user.UserID)
	if err != nil {
		utils.TrackError("session", "count_check")
		utils.InternalError(c, "Failed to check session count")
		return
	}

	var notice string
	if activeCount >= MaxActiveSessions {
		if err := sessionRepo.EndLeastActiveSession(user.UserID); err != nil {
			utils.TrackError("session", "session_cleanup")
			utils.InternalError(c, "Failed to manage sessions")
			return
		}
		notice = "Logged out of least active session due to session limit"
		log.Printf("Ended least active session for user %s due to session limit", user.UserID)
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if _, err := middleware.CreateSession(c, user.UserID, sessionRepo); err != nil {
		utils.TrackError("session", "session_create")
		utils.InternalError(c, "Failed to create session")
		return
	}

	utils.TrackAuthAttempt("success", "login")
	if count, err := sessionRepo.CountActiveSessions(user.UserID); err == nil {
		utils.UpdateActiveSessions(float64(count))
	}

	response := gin.H{
		"token":   token,
		"refresh": refreshToken,
		"user":    user.Username,
	}
	if notice != "" {
		response["notice"] = notice
	}
	utils.Success(c, response)
}
