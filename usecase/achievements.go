package usecase

import (
	"context"
	"time"

	"main/model"
	"main/repository"
)

// AchievementRule is one row of the static unlock catalog.
type AchievementRule struct {
	ID          string
	Title       string
	Description string
	Unlocks     func(stats *model.UserStats) bool
}

// DefaultAchievementRules is the static rule table. The catalog's content is
// intentionally small; rules only read the computed user stats.
var DefaultAchievementRules = []AchievementRule{
	{
		ID:          "first_checkin",
		Title:       "First Step",
		Description: "Log your first check-in",
		Unlocks:     func(s *model.UserStats) bool { return s.CheckinStats.Total >= 1 },
	},
	{
		ID:          "week_streak",
		Title:       "Momentum",
		Description: "Keep a 7-day streak on any goal",
		Unlocks:     func(s *model.UserStats) bool { return s.GoalStats.LongestStreak >= 7 },
	},
	{
		ID:          "first_goal_done",
		Title:       "Finisher",
		Description: "Bring a goal to 100% progress",
		Unlocks:     func(s *model.UserStats) bool { return s.GoalStats.Completed >= 1 },
	},
	{
		ID:          "five_goals",
		Title:       "Juggler",
		Description: "Track five goals at once",
		Unlocks:     func(s *model.UserStats) bool { return s.GoalStats.Total >= 5 },
	},
}

// AchievementService owns unlocked-badge state through explicit load/save
// against a user-keyed store. It is injected into handlers; nothing reads
// achievement state ambiently.
type AchievementService struct {
	Repo  *repository.AchievementsRepo
	Rules []AchievementRule
}

func NewAchievementService(repo *repository.AchievementsRepo) *AchievementService {
	return &AchievementService{
		Repo:  repo,
		Rules: DefaultAchievementRules,
	}
}

func (svc *AchievementService) Load(ctx context.Context, userID string) (*model.UserAchievements, error) {
	return svc.Repo.Load(ctx, userID)
}

// Evaluate applies the rule table against fresh stats, persists any new
// unlocks, and returns them.
func (svc *AchievementService) Evaluate(ctx context.Context, userID string, stats *model.UserStats) ([]model.Achievement, error) {
	state, err := svc.Repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	newlyUnlocked := EvaluateRules(svc.Rules, state, stats, time.Now())
	if len(newlyUnlocked) == 0 {
		return nil, nil
	}

	state.Unlocked = append(state.Unlocked, newlyUnlocked...)
	if err := svc.Repo.Save(ctx, state); err != nil {
		return nil, err
	}
	return newlyUnlocked, nil
}

// EvaluateRules is the pure part of Evaluate: which rules newly unlock
// given the current state and stats.
func EvaluateRules(rules []AchievementRule, state *model.UserAchievements, stats *model.UserStats, now time.Time) []model.Achievement {
	var unlocked []model.Achievement
	for _, rule := range rules {
		if state.HasUnlocked(rule.ID) {
			continue
		}
		if rule.Unlocks(stats) {
			unlocked = append(unlocked, model.Achievement{
				AchievementID: rule.ID,
				Title:         rule.Title,
				Description:   rule.Description,
				UnlockedAt:    now,
			})
		}
	}
	return unlocked
}
