package handler

import (
	"errors"
	"log"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	service *usecase.GoalsService
}

func NewGoalHandler(service *usecase.GoalsService) *GoalHandler {
	return &GoalHandler{service: service}
}

// invalidateDashboard drops the user's cached dashboard ranking after a goal
// mutation. Best-effort: a cache failure only means a stale ranking for a
// few minutes.
func invalidateDashboard(c *gin.Context, userID string) {
	if services.GlobalDashboardCache == nil {
		return
	}
	if err := services.GlobalDashboardCache.Invalidate(c.Request.Context(), userID); err != nil {
		log.Printf("Warning: failed to invalidate dashboard cache for user %s: %v", userID, err)
		utils.TrackCacheOperation("dashboard_invalidate", false)
	}
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
		DueDate     string `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	goal := &model.Goal{
		UserID:      userID.(string),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
	}

	if err := h.service.CreateGoal(c.Request.Context(), goal); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.TrackGoalOperation("create")
	invalidateDashboard(c, userID.(string))
	utils.Created(c, dto.ToGoalResponse(goal))
}

func (h *GoalHandler) GetUserGoals(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	opts := usecase.GoalListOptions{
		UserID:    userID.(string),
		Category:  c.Query("category"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	goals, err := h.service.GetUserGoals(c.Request.Context(), opts)
	if err != nil {
		utils.InternalError(c, "Failed to fetch goals")
		return
	}

	utils.Success(c, gin.H{
		"goals": dto.ToGoalResponses(goals),
		"count": len(goals),
	})
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
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

	utils.Success(c, dto.ToGoalResponse(goal))
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
		DueDate     string `json:"due_date"`
		Progress    int    `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	updates := &model.Goal{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Progress:    req.Progress,
	}

	if err := h.service.UpdateGoal(c.Request.Context(), c.Param("id"), userID.(string), updates); err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			utils.NotFound(c, "Goal not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.TrackGoalOperation("update")
	invalidateDashboard(c, userID.(string))
	utils.Success(c, gin.H{"message": "goal updated successfully"})
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	if err := h.service.DeleteGoal(c.Request.Context(), c.Param("id"), userID.(string)); err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			utils.NotFound(c, "Goal not found")
			return
		}
		utils.InternalError(c, "Failed to delete goal")
		return
	}

	utils.TrackGoalOperation("delete")
	invalidateDashboard(c, userID.(string))
	utils.Success(c, gin.H{"message": "goal deleted successfully"})
}
