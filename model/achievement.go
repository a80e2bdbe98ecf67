package model

import "time"

// Achievement is one unlocked badge. The catalog of unlockable badges is a
// static rule table owned by the achievement service.
type Achievement struct {
	AchievementID string    `bson:"achievement_id" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	UnlockedAt    time.Time `bson:"unlocked_at" json:"unlocked_at"`
}

// UserAchievements is the user-keyed unlocked-badge state. It is loaded and
// saved explicitly; nothing holds it as ambient global state.
type UserAchievements struct {
	UserID    string        `bson:"user_id" json:"user_id"`
	Unlocked  []Achievement `bson:"unlocked,omitempty" json:"unlocked,omitempty"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// HasUnlocked reports whether the badge with the given catalog id is present.
func (ua *UserAchievements) HasUnlocked(achievementID string) bool {
	for _, a := range ua.Unlocked {
		if a.AchievementID == achievementID {
			return true
		}
	}
	return false
}
