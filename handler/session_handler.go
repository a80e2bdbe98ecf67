package handler

import (
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetActiveSessions(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	sessions, err := sessionRepo.GetActiveSessions(userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch sessions")
		return
	}

	currentID := ""
	if cookie, err := c.Cookie("session_id"); err == nil {
		currentID = cookie
	}

	response := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, gin.H{
			"session_id":       s.SessionID,
			"display_name":     s.DisplayName,
			"device_info":      s.DeviceInfo,
			"ip_address":       s.IPAddress,
			"created_at":       s.CreatedAt,
			"last_activity_at": s.LastActivityAt,
			"is_current":       s.SessionID == currentID,
		})
	}

	utils.Success(c, gin.H{
		"sessions": response,
		"count":    len(response),
	})
}
