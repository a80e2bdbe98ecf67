package handler

import (
	"log"
	"strconv"
	"time"

	"main/dto"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the ranked "what deserves attention today" view.
type DashboardHandler struct {
	service *usecase.GoalsService
}

func NewDashboardHandler(service *usecase.GoalsService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetTopGoals returns the user's highest-priority goals with their scores.
// The ranking is cached per (user, limit); a cache failure falls back to
// recomputing from Mongo.
func (h *DashboardHandler) GetTopGoals(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	limit := usecase.DefaultTopGoalsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 20 {
			utils.BadRequest(c, "limit must be a number between 1 and 20")
			return
		}
		limit = parsed
	}

	ctx := c.Request.Context()

	if services.GlobalDashboardCache != nil {
		cached, err := services.GlobalDashboardCache.GetTopGoals(ctx, userID.(string), limit)
		if err != nil {
			log.Printf("Warning: dashboard cache read failed for user %s: %v", userID, err)
		}
		utils.TrackCacheOperation("dashboard", err == nil && cached != nil)
		if cached != nil {
			utils.Success(c, h.buildResponse(cached, true))
			return
		}
	}

	goals, err := h.service.TopGoals(ctx, userID.(string), limit)
	if err != nil {
		utils.InternalError(c, "Failed to rank goals")
		return
	}

	if services.GlobalDashboardCache != nil {
		if err := services.GlobalDashboardCache.SetTopGoals(ctx, userID.(string), limit, goals); err != nil {
			log.Printf("Warning: dashboard cache write failed for user %s: %v", userID, err)
		}
	}

	utils.Success(c, h.buildResponse(goals, false))
}

func (h *DashboardHandler) buildResponse(goals []*model.Goal, cached bool) gin.H {
	now := time.Now()
	top := make([]dto.TopGoalResponse, len(goals))
	for i, goal := range goals {
		top[i] = dto.TopGoalResponse{
			GoalResponse:  dto.ToGoalResponse(goal),
			PriorityScore: usecase.PriorityScore(goal, now),
		}
	}
	return gin.H{
		"top_goals": top,
		"count":     len(top),
		"cached":    cached,
	}
}
