package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/utils"
)

type GoalsService struct {
	GoalsRepo *repository.GoalsRepo
}

// Listing options for a user's goals
type GoalListOptions struct {
	UserID    string
	Category  string // filter, empty means all
	SortBy    string // "updated_at", "due_date", "title", "streak"
	SortOrder string // "asc" or "desc"
}

// helper functions
func sortGoals(goals []*model.Goal, sortBy string, sortOrder string) {
	sort.Slice(goals, func(i, j int) bool {
		descending := sortOrder == "desc"
		switch sortBy {
		case "title":
			if descending {
				return goals[i].Title > goals[j].Title
			}
			return goals[i].Title < goals[j].Title
		case "due_date":
			// empty due dates sort last either way
			a, b := goals[i].DueDate, goals[j].DueDate
			if a == "" || b == "" {
				return b == "" && a != ""
			}
			if descending {
				return a > b
			}
			return a < b
		case "streak":
			if descending {
				return goals[i].CurrentStreak > goals[j].CurrentStreak
			}
			return goals[i].CurrentStreak < goals[j].CurrentStreak
		default: // updated_at
			if descending {
				return goals[i].UpdatedAt.After(goals[j].UpdatedAt)
			}
			return goals[i].UpdatedAt.Before(goals[j].UpdatedAt)
		}
	})
}

func (svc *GoalsService) validateGoal(goal *model.Goal) error {
	goal.Title = strings.TrimSpace(goal.Title)
	if goal.Title == "" {
		return errors.New("goal title is required")
	}
	if len(goal.Title) > 200 {
		return errors.New("goal title exceeds maximum length")
	}

	goal.Category = strings.TrimSpace(goal.Category)
	if len(goal.Category) > 50 {
		return errors.New("goal category exceeds maximum length")
	}

	if goal.DueDate != "" {
		if _, err := time.Parse(dayFormat, goal.DueDate); err != nil {
			return errors.New("due date must be a YYYY-MM-DD calendar date")
		}
	}

	goal.Progress = ClampProgress(goal.Progress)
	return nil
}

// service functions

func (svc *GoalsService) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if goal.UserID == "" {
		return errors.New("user ID is required")
	}
	if err := svc.validateGoal(goal); err != nil {
		return err
	}

	now := time.Now()
	goal.GoalID = utils.GenerateID()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	goal.CurrentStreak = 0
	goal.LastCheckinDate = ""
	goal.CheckinHistory = nil
	goal.Milestones = nil

	return svc.GoalsRepo.CreateGoal(ctx, goal)
}

func (svc *GoalsService) GetUserGoals(ctx context.Context, opts GoalListOptions) ([]*model.Goal, error) {
	if opts.UserID == "" {
		return nil, errors.New("user ID is required")
	}

	goals, err := svc.GoalsRepo.GetUserGoals(ctx, opts.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}

	if opts.Category != "" {
		filtered := goals[:0]
		for _, g := range goals {
			if g.Category == opts.Category {
				filtered = append(filtered, g)
			}
		}
		goals = filtered
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "updated_at"
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	sortGoals(goals, sortBy, sortOrder)

	return goals, nil
}

func (svc *GoalsService) GetGoal(ctx context.Context, goalID, userID string) (*model.Goal, error) {
	if goalID == "" || userID == "" {
		return nil, errors.New("goal ID and user ID are required")
	}
	return svc.GoalsRepo.FindGoal(ctx, goalID, userID)
}

func (svc *GoalsService) UpdateGoal(ctx context.Context, goalID, userID string, updates *model.Goal) error {
	if err := svc.validateGoal(updates); err != nil {
		return err
	}

	// Direct progress edits are overridden by the milestone list whenever
	// milestones exist.
	existing, err := svc.GoalsRepo.FindGoal(ctx, goalID, userID)
	if err != nil {
		return err
	}
	if len(existing.Milestones) > 0 {
		updates.Progress = MilestoneProgress(existing.Milestones)
	}

	return svc.GoalsRepo.UpdateGoal(ctx, goalID, userID, updates)
}

func (svc *GoalsService) DeleteGoal(ctx context.Context, goalID, userID string) error {
	return svc.GoalsRepo.DeleteGoal(ctx, goalID, userID)
}

// AddCheckin logs an activity event for today, advances the streak, and
// optionally records the check-in as a completed milestone.
func (svc *GoalsService) AddCheckin(ctx context.Context, goalID, userID, description string, asMilestone bool) (*model.Goal, *model.CheckinEntry, error) {
	goal, err := svc.GoalsRepo.FindGoal(ctx, goalID, userID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	entry := model.CheckinEntry{
		CheckinID:   utils.GenerateID(),
		Description: strings.TrimSpace(description),
		Date:        now.Format(dayFormat),
		CreatedAt:   now,
	}

	goal.CurrentStreak = AdvanceStreak(goal, now)
	goal.LastCheckinDate = entry.Date
	goal.CheckinHistory = append(goal.CheckinHistory, entry)

	if asMilestone {
		goal.Milestones = append(goal.Milestones, model.Milestone{
			MilestoneID: utils.GenerateID(),
			Text:        entry.Description,
			Completed:   true,
			CheckinID:   entry.CheckinID,
			CreatedAt:   now,
		})
	}
	if len(goal.Milestones) > 0 {
		goal.Progress = MilestoneProgress(goal.Milestones)
	}
	goal.UpdatedAt = now

	if err := svc.GoalsRepo.SaveDerivedState(ctx, goal); err != nil {
		return nil, nil, err
	}

	utils.TrackGoalOperation("checkin")
	return goal, &entry, nil
}

// DeleteCheckin removes an entry and recomputes the streak from the
// remaining history. The deleted entry may sit anywhere in the run, so the
// old count cannot simply be decremented. A milestone auto-created by the
// deleted check-in is removed with it.
func (svc *GoalsService) DeleteCheckin(ctx context.Context, goalID, userID, checkinID string) (*model.Goal, error) {
	goal, err := svc.GoalsRepo.FindGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	history := goal.CheckinHistory[:0]
	found := false
	for _, entry := range goal.CheckinHistory {
		if entry.CheckinID == checkinID {
			found = true
			continue
		}
		history = append(history, entry)
	}
	if !found {
		return nil, errors.New("check-in not found")
	}
	goal.CheckinHistory = history

	milestones := goal.Milestones[:0]
	for _, m := range goal.Milestones {
		if m.CheckinID == checkinID && !m.IsStandalone {
			continue
		}
		milestones = append(milestones, m)
	}
	goal.Milestones = milestones

	now := time.Now()
	result := RecalculateStreak(goal.CheckinHistory, now)
	goal.CurrentStreak = result.Streak
	goal.LastCheckinDate = result.LastCheckinDate
	if len(goal.Milestones) > 0 {
		goal.Progress = MilestoneProgress(goal.Milestones)
	}
	goal.UpdatedAt = now

	if err := svc.GoalsRepo.SaveDerivedState(ctx, goal); err != nil {
		return nil, err
	}

	utils.TrackGoalOperation("checkin_delete")
	return goal, nil
}

// AddMilestone creates a standalone milestone and recomputes progress
func (svc *GoalsService) AddMilestone(ctx context.Context, goalID, userID, text string) (*model.Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("milestone text is required")
	}

	goal, err := svc.GoalsRepo.FindGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	goal.Milestones = append(goal.Milestones, model.Milestone{
		MilestoneID:  utils.GenerateID(),
		Text:         text,
		Completed:    false,
		IsStandalone: true,
		CreatedAt:    now,
	})
	goal.Progress = MilestoneProgress(goal.Milestones)
	goal.UpdatedAt = now

	if err := svc.GoalsRepo.SaveDerivedState(ctx, goal); err != nil {
		return nil, err
	}

	utils.TrackGoalOperation("milestone")
	return goal, nil
}

// ToggleMilestone flips a milestone's completed flag and recomputes progress
func (svc *GoalsService) ToggleMilestone(ctx context.Context, goalID, userID, milestoneID string) (*model.Goal, error) {
	goal, err := svc.GoalsRepo.FindGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range goal.Milestones {
		if goal.Milestones[i].MilestoneID == milestoneID {
			goal.Milestones[i].Completed = !goal.Milestones[i].Completed
			found = true
			break
		}
	}
	if !found {
		return nil, errors.New("milestone not found")
	}

	goal.Progress = MilestoneProgress(goal.Milestones)
	goal.UpdatedAt = time.Now()

	if err := svc.GoalsRepo.SaveDerivedState(ctx, goal); err != nil {
		return nil, err
	}

	utils.TrackGoalOperation("milestone")
	return goal, nil
}

// DeleteMilestone removes a milestone. Progress is recomputed while any
// milestones remain; deleting the last one leaves the last computed value.
func (svc *GoalsService) DeleteMilestone(ctx context.Context, goalID, userID, milestoneID string) (*model.Goal, error) {
	goal, err := svc.GoalsRepo.FindGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	milestones := goal.Milestones[:0]
	found := false
	for _, m := range goal.Milestones {
		if m.MilestoneID == milestoneID {
			found = true
			continue
		}
		milestones = append(milestones, m)
	}
	if !found {
		return nil, errors.New("milestone not found")
	}
	goal.Milestones = milestones

	if len(goal.Milestones) > 0 {
		goal.Progress = MilestoneProgress(goal.Milestones)
	}
	goal.UpdatedAt = time.Now()

	if err := svc.GoalsRepo.SaveDerivedState(ctx, goal); err != nil {
		return nil, err
	}

	utils.TrackGoalOperation("milestone")
	return goal, nil
}

// TopGoals loads the user's goals and returns the limit highest-priority
// ones for the dashboard.
func (svc *GoalsService) TopGoals(ctx context.Context, userID string, limit int) ([]*model.Goal, error) {
	goals, err := svc.GoalsRepo.GetUserGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	return TopGoals(goals, limit, time.Now()), nil
}
