package handler

import (
	"strings"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	authHeader := c.GetHeader("Authorization")
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	// Refresh token is optional; logout still ends the session without it
	c.ShouldBindJSON(&req)

	if accessToken != "" {
		if err := services.BlacklistTokens(accessToken, req.RefreshToken); err != nil {
			utils.TrackError("auth", "blacklist_failed")
			// Session teardown still proceeds; the access token just stays
			// valid until it expires.
		}
	}

	if sessionValue, exists := c.Get("session"); exists {
		if session, ok := sessionValue.(*model.Session); ok {
			session.IsActive = false
			if err := sessionRepo.UpdateSession(session); err != nil {
				utils.InternalError(c, "Failed to end session")
				return
			}
		}
	}
	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.Success(c, gin.H{"message": "logged out successfully"})
}

func LogoutAllSessions(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	count, err := sessionRepo.EndAllUserSessions(userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to end sessions")
		return
	}
	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.Success(c, gin.H{
		"message":        "all sessions ended",
		"sessions_ended": count,
	})
}
