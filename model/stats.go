package model

import "time"

type UserStats struct {
	GoalStats struct {
		Total          int            `json:"total"`
		Completed      int            `json:"completed"`
		ActiveStreaks  int            `json:"active_streaks"`
		LongestStreak  int            `json:"longest_streak"`
		CategoryCounts map[string]int `json:"category_counts"`
	} `json:"goal_stats"`
	CheckinStats struct {
		Total    int    `json:"total"`
		ThisWeek int    `json:"this_week"`
		LastDate string `json:"last_date,omitempty"`
	} `json:"checkin_stats"`
	AchievementStats struct {
		Unlocked int `json:"unlocked"`
	} `json:"achievement_stats"`
	ActivityStats struct {
		AccountCreated time.Time `json:"account_created"`
		TotalSessions  int       `json:"total_sessions"`
	} `json:"activity_stats"`
}
