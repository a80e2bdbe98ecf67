package handler

import (
	"errors"
	"log"
	"time"

	"main/dto"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// CheckinHandler covers check-in logging and removal, plus the follow-on
// work a check-in triggers: achievement evaluation and optional coaching.
type CheckinHandler struct {
	service      *usecase.GoalsService
	achievements *usecase.AchievementService
	coach        *services.CoachService
}

func NewCheckinHandler(service *usecase.GoalsService, achievements *usecase.AchievementService, coach *services.CoachService) *CheckinHandler {
	return &CheckinHandler{
		service:      service,
		achievements: achievements,
		coach:        coach,
	}
}

func (h *CheckinHandler) AddCheckin(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req struct {
		Description string `json:"description"`
		AsMilestone bool   `json:"as_milestone"`
		WithCoach   bool   `json:"with_coach"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	goal, entry, err := h.service.AddCheckin(ctx, c.Param("id"), userID.(string), req.Description, req.AsMilestone)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			utils.NotFound(c, "Goal not found")
			return
		}
		utils.InternalError(c, "Failed to log check-in")
		return
	}
	invalidateDashboard(c, userID.(string))

	response := gin.H{
		"goal":    dto.ToGoalResponse(goal),
		"checkin": entry,
	}

	// Achievement evaluation happens inline after the check-in persists. A
	// failure here never fails the check-in itself.
	if unlocked := h.evaluateAchievements(c, userID.(string)); len(unlocked) > 0 {
		response["achievements_unlocked"] = unlocked
	}

	if req.WithCoach && h.coach != nil {
		message, err := h.coach.CheckinEncouragement(ctx, goal, req.Description)
		if err != nil {
			log.Printf("Warning: coach encouragement failed for user %s: %v", userID, err)
			utils.TrackError("coach", "encouragement_failed")
		} else {
			response["encouragement"] = message
		}
	}

	utils.Created(c, response)
}

func (h *CheckinHandler) GetCheckins(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	goal, err := h.service.GetGoal(c.Request.Context(), c.Param("id"), userID.(string))
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			utils.NotFound(c, "Goal not found")
			return
		}
		utils.InternalError(c, "Failed to fetch goal")
		return
	}

	utils.Success(c, gin.H{
		"checkins":          goal.CheckinHistory,
		"count":             len(goal.CheckinHistory),
		"current_streak":    goal.CurrentStreak,
		"last_checkin_date": goal.LastCheckinDate,
	})
}

func (h *CheckinHandler) DeleteCheckin(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	goal, err := h.service.DeleteCheckin(c.Request.Context(), c.Param("id"), userID.(string), c.Param("checkinId"))
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			utils.NotFound(c, "Goal not found")
			return
		}
		if err.Error() == "check-in not found" {
			utils.NotFound(c, "Check-in not found")
			return
		}
		utils.InternalError(c, "Failed to delete check-in")
		return
	}
	invalidateDashboard(c, userID.(string))

	utils.Success(c, dto.ToGoalResponse(goal))
}

func (h *CheckinHandler) evaluateAchievements(c *gin.Context, userID string) []gin.H {
	ctx := c.Request.Context()
	goals, err := h.service.GetUserGoals(ctx, usecase.GoalListOptions{UserID: userID})
	if err != nil {
		log.Printf("Warning: achievement stats load failed for user %s: %v", userID, err)
		return nil
	}

	stats := usecase.BuildGoalStats(goals, time.Now())
	unlocked, err := h.achievements.Evaluate(ctx, userID, stats)
	if err != nil {
		log.Printf("Warning: achievement evaluation failed for user %s: %v", userID, err)
		utils.TrackError("achievements", "evaluate_failed")
		return nil
	}

	result := make([]gin.H, 0, len(unlocked))
	for _, a := range unlocked {
		result = append(result, gin.H{
			"id":          a.AchievementID,
			"title":       a.Title,
			"description": a.Description,
		})
	}
	return result
}
