package model

import "time"

// Common goal categories. Category is free-form; these are the values the
// client offers by default.
const (
	CategoryHealth   = "health"
	CategoryWork     = "work"
	CategoryLearning = "learning"
	CategoryPersonal = "personal"
)

// Goal is the one-document-per-goal unit of storage. Check-ins and milestones
// are embedded so every mutation is a single-document read-modify-write.
type Goal struct {
	GoalID          string         `bson:"_id,omitempty" json:"id"`
	UserID          string         `bson:"user_id" json:"user_id"`
	Title           string         `bson:"title" json:"title" binding:"required"`
	Description     string         `bson:"description,omitempty" json:"description,omitempty"`
	Category        string         `bson:"category,omitempty" json:"category,omitempty"`
	DueDate         string         `bson:"due_date,omitempty" json:"due_date,omitempty"` // YYYY-MM-DD
	Progress        int            `bson:"progress" json:"progress"`
	CurrentStreak   int            `bson:"current_streak" json:"current_streak"`
	LastCheckinDate string         `bson:"last_checkin_date,omitempty" json:"last_checkin_date,omitempty"` // YYYY-MM-DD
	CheckinHistory  []CheckinEntry `bson:"checkin_history,omitempty" json:"checkin_history,omitempty"`
	Milestones      []Milestone    `bson:"milestones,omitempty" json:"milestones,omitempty"`
	CreatedAt       time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `bson:"updated_at" json:"updated_at"`
}

// CheckinEntry is one logged activity event against a goal. Date is the
// canonical calendar day; CreatedAt keeps the full timestamp. Multiple
// entries may share a Date and collapse to a single streak day.
type CheckinEntry struct {
	CheckinID   string    `bson:"checkin_id" json:"id"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Date        string    `bson:"date" json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Milestone is a discrete completable unit of progress. CheckinID links a
// milestone auto-created by a check-in back to that entry; standalone
// milestones are created directly by the user.
type Milestone struct {
	MilestoneID  string    `bson:"milestone_id" json:"id"`
	Text         string    `bson:"text" json:"text"`
	Completed    bool      `bson:"completed" json:"completed"`
	IsStandalone bool      `bson:"is_standalone,omitempty" json:"is_standalone,omitempty"`
	CheckinID    string    `bson:"checkin_id,omitempty" json:"checkin_id,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
