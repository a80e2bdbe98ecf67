package usecase

import (
	"time"

	"main/model"
)

// BuildGoalStats fills the goal- and check-in-derived portions of UserStats
// from the user's loaded goals. Pure; "this week" means the last 7 calendar
// days including today.
func BuildGoalStats(goals []*model.Goal, now time.Time) *model.UserStats {
	stats := &model.UserStats{}
	stats.GoalStats.CategoryCounts = make(map[string]int)

	weekStart := now.AddDate(0, 0, -6).Format(dayFormat)
	lastDate := ""

	for _, goal := range goals {
		stats.GoalStats.Total++
		if goal.Progress >= 100 {
			stats.GoalStats.Completed++
		}
		if goal.CurrentStreak > 0 {
			stats.GoalStats.ActiveStreaks++
		}
		if goal.CurrentStreak > stats.GoalStats.LongestStreak {
			stats.GoalStats.LongestStreak = goal.CurrentStreak
		}
		if goal.Category != "" {
			stats.GoalStats.CategoryCounts[goal.Category]++
		}

		for _, entry := range goal.CheckinHistory {
			day, ok := NormalizeCheckinDate(entry)
			if !ok {
				continue
			}
			stats.CheckinStats.Total++
			if day >= weekStart {
				stats.CheckinStats.ThisWeek++
			}
			if day > lastDate {
				lastDate = day
			}
		}
	}

	stats.CheckinStats.LastDate = lastDate
	return stats
}
