package handler

import (
	"errors"

	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	service *usecase.GoalsService
}

func NewMilestoneHandler(service *usecase.GoalsService) *MilestoneHandler {
	return &MilestoneHandler{service: service}
}

func (h *MilestoneHandler) AddMilestone(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	goal, err := h.service.AddMilestone(c.Request.Context(), c.Param("id"), userID.(string), req.Text)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			utils.NotFound(c, "Goal not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}
	invalidateDashboard(c, userID.(string))

	utils.Created(c, dto.ToGoalResponse(goal))
}

func (h *MilestoneHandler) ToggleMilestone(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	goal, err := h.service.ToggleMilestone(c.Request.Context(), c.Param("id"), userID.(string), c.Param("milestoneId"))
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			utils.NotFound(c, "Goal not found")
			return
		}
		if err.Error() == "milestone not found" {
			utils.NotFound(c, "Milestone not found")
			return
		}
		utils.InternalError(c, "Failed to update milestone")
		return
	}
	invalidateDashboard(c, userID.(string))

	utils.Success(c, dto.ToGoalResponse(goal))
}

func (h *MilestoneHandler) DeleteMilestone(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	goal, err := h.service.DeleteMilestone(c.Request.Context(), c.Param("id"), userID.(string), c.Param("milestoneId"))
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			utils.NotFound(c, "Goal not found")
			return
		}
		if err.Error() == "milestone not found" {
			utils.NotFound(c, "Milestone not found")
			return
		}
		utils.InternalError(c, "Failed to delete milestone")
		return
	}
	invalidateDashboard(c, userID.(string))

	utils.Success(c, dto.ToGoalResponse(goal))
}
