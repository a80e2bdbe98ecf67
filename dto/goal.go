package dto

import (
	"time"

	"main/model"
)

type GoalResponse struct {
	ID              string                  `json:"id"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description,omitempty"`
	Category        string                  `json:"category,omitempty"`
	DueDate         string                  `json:"due_date,omitempty"`
	Progress        int                     `json:"progress"`
	CurrentStreak   int                     `json:"current_streak"`
	LastCheckinDate string                  `json:"last_checkin_date,omitempty"`
	Checkins        []model.CheckinEntry    `json:"checkins,omitempty"`
	Milestones      []model.Milestone       `json:"milestones,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	DueStatus       string                  `json:"due_status,omitempty"` // computed field
}

// ToGoalResponse converts a model.Goal, computing the display due status
func ToGoalResponse(goal *model.Goal) GoalResponse {
	response := GoalResponse{
		ID:              goal.GoalID,
		Title:           goal.Title,
		Description:     goal.Description,
		Category:        goal.Category,
		DueDate:         goal.DueDate,
		Progress:        goal.Progress,
		CurrentStreak:   goal.CurrentStreak,
		LastCheckinDate: goal.LastCheckinDate,
		Checkins:        goal.CheckinHistory,
		Milestones:      goal.Milestones,
		CreatedAt:       goal.CreatedAt,
		UpdatedAt:       goal.UpdatedAt,
	}

	if goal.DueDate != "" {
		if due, err := time.Parse("2006-01-02", goal.DueDate); err == nil {
			today, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
			switch {
			case due.Before(today):
				response.DueStatus = "overdue"
			case due.Equal(today):
				response.DueStatus = "due_today"
			default:
				response.DueStatus = "upcoming"
			}
		}
	}

	return response
}

func ToGoalResponses(goals []*model.Goal) []GoalResponse {
	responses := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		responses[i] = ToGoalResponse(goal)
	}
	return responses
}

// TopGoalResponse pairs a goal with its ranking score for the dashboard.
// The score is display-only; it is never persisted.
type TopGoalResponse struct {
	GoalResponse
	PriorityScore int `json:"priority_score"`
}
