package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	service *usecase.AchievementService
}

func NewAchievementHandler(service *usecase.AchievementService) *AchievementHandler {
	return &AchievementHandler{service: service}
}

// GetAchievements returns the full catalog with unlock state, so clients can
// render locked badges alongside earned ones.
func (h *AchievementHandler) GetAchievements(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	state, err := h.service.Load(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to load achievements")
		return
	}

	catalog := make([]gin.H, 0, len(h.service.Rules))
	for _, rule := range h.service.Rules {
		entry := gin.H{
			"id":          rule.ID,
			"title":       rule.Title,
			"description": rule.Description,
			"unlocked":    false,
		}
		for _, a := range state.Unlocked {
			if a.AchievementID == rule.ID {
				entry["unlocked"] = true
				entry["unlocked_at"] = a.UnlockedAt
				break
			}
		}
		catalog = append(catalog, entry)
	}

	utils.Success(c, gin.H{
		"achievements": catalog,
		"unlocked":     len(state.Unlocked),
	})
}
