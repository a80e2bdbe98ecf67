package handler

import (
	"errors"

	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// CoachHandler exposes the AI coaching endpoints. Coaching is read-only over
// goal state; a failed upstream call surfaces as 502 without touching data.
type CoachHandler struct {
	service *usecase.GoalsService
	coach   *services.CoachService
}

func NewCoachHandler(service *usecase.GoalsService, coach *services.CoachService) *CoachHandler {
	return &CoachHandler{service: service, coach: coach}
}

// Encourage generates a one-off encouragement for a single goal, without
// logging a check-in.
func (h *CoachHandler) Encourage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	// Body is optional
	c.ShouldBindJSON(&req)

	ctx := c.Request.Context()
	goal, err := h.service.GetGoal(ctx, c.Param("id"), userID.(string))
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			utils.NotFound(c, "Goal not found")
			return
		}
		utils.InternalError(c, "Failed to fetch goal")
		return
	}

	message, err := h.coach.CheckinEncouragement(ctx, goal, req.Note)
	if err != nil {
		utils.TrackError("coach", "encouragement_failed")
		utils.BadGateway(c, "Coaching service is unavailable")
		return
	}

	utils.Success(c, gin.H{"message": message})
}

// DailyFocus asks the coach for a focus suggestion built from the user's
// top-ranked goals.
func (h *CoachHandler) DailyFocus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	ctx := c.Request.Context()
	goals, err := h.service.TopGoals(ctx, userID.(string), usecase.DefaultTopGoalsLimit)
	if err != nil {
		utils.InternalError(c, "Failed to rank goals")
		return
	}
	if len(goals) == 0 {
		utils.BadRequest(c, "No goals to focus on yet")
		return
	}

	message, err := h.coach.DailyFocus(ctx, goals)
	if err != nil {
		utils.TrackError("coach", "daily_focus_failed")
		utils.BadGateway(c, "Coaching service is unavailable")
		return
	}

	utils.Success(c, gin.H{
		"message": message,
		"goals":   len(goals),
	})
}
