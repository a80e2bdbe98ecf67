package usecase

import (
	"math"
	"sort"
	"time"

	"main/model"
)

// DefaultTopGoalsLimit is how many goals the dashboard surfaces when the
// caller doesn't ask for a specific count.
const DefaultTopGoalsLimit = 3

const dayFormat = "2006-01-02"

// PriorityScore ranks a goal for "what should I focus on today". It is the
// sum of four independent contributions evaluated against now: recency of
// the last update (0-30), current streak (0-35), progress (0-20) and
// due-date urgency (-10 to 15). Streak is deliberately the dominant term;
// consistency beats raw progress. The total is not clamped.
func PriorityScore(goal *model.Goal, now time.Time) int {
	return recencyScore(goal.UpdatedAt, now) +
		streakScore(goal.CurrentStreak) +
		progressScore(goal.Progress) +
		urgencyScore(goal.DueDate, now)
}

// TopGoals returns the limit highest-scoring goals in descending score
// order. Ties keep their input order. The input slice is not modified.
func TopGoals(goals []*model.Goal, limit int, now time.Time) []*model.Goal {
	if limit <= 0 {
		limit = DefaultTopGoalsLimit
	}

	type scored struct {
		goal  *model.Goal
		score int
	}
	ranked := make([]scored, len(goals))
	for i, g := range goals {
		ranked[i] = scored{goal: g, score: PriorityScore(g, now)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	top := make([]*model.Goal, limit)
	for i := range top {
		top[i] = ranked[i].goal
	}
	return top
}

func recencyScore(updatedAt time.Time, now time.Time) int {
	if updatedAt.IsZero() {
		return 0
	}
	days := int(now.Sub(updatedAt).Hours() / 24)
	switch {
	case days <= 1:
		return 30
	case days <= 3:
		return 20
	case days <= 7:
		return 15
	case days <= 14:
		return 10
	}
	return 0
}

func streakScore(streak int) int {
	switch {
	case streak >= 7:
		return 35
	case streak >= 5:
		return 30
	case streak >= 3:
		return 25
	case streak >= 2:
		return 15
	case streak >= 1:
		return 10
	}
	return 0
}

func progressScore(progress int) int {
	switch {
	case progress >= 80:
		return 20
	case progress >= 60:
		return 15
	case progress >= 40:
		return 12
	case progress >= 20:
		return 8
	case progress > 0:
		return 5
	}
	return 0
}

// urgencyScore compares the due date to now in whole days, rounding up.
// A missing or unparsable due date contributes nothing rather than erroring.
func urgencyScore(dueDate string, now time.Time) int {
	if dueDate == "" {
		return 0
	}
	due, err := time.ParseInLocation(dayFormat, dueDate, now.Location())
	if err != nil {
		return 0
	}

	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return -10 // past due
	case days > 0 && days <= 3:
		return 15
	case days > 0 && days <= 7:
		return 12
	case days > 0 && days <= 14:
		return 10
	case days > 0 && days <= 30:
		return 5
	}
	return 0
}
