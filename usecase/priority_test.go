package usecase

import (
	"reflect"
	"testing"
	"time"

	"main/model"
)

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.Parse(dayFormat, value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return day
}

func TestPriorityScore(t *testing.T) {
	now := mustDay(t, "2024-06-15")

	tests := []struct {
		name string
		goal model.Goal
		want int
	}{
		{
			name: "zero value goal scores nothing",
			goal: model.Goal{},
			want: 0,
		},
		{
			name: "updated today",
			goal: model.Goal{UpdatedAt: now},
			want: 30,
		},
		{
			name: "updated five days ago",
			goal: model.Goal{UpdatedAt: now.AddDate(0, 0, -5)},
			want: 15,
		},
		{
			name: "updated a month ago contributes nothing",
			goal: model.Goal{UpdatedAt: now.AddDate(0, -1, 0)},
			want: 0,
		},
		{
			name: "week-long streak hits the cap",
			goal: model.Goal{CurrentStreak: 7},
			want: 35,
		},
		{
			name: "longer streak scores the same as seven",
			goal: model.Goal{CurrentStreak: 42},
			want: 35,
		},
		{
			name: "two-day streak",
			goal: model.Goal{CurrentStreak: 2},
			want: 15,
		},
		{
			name: "high progress",
			goal: model.Goal{Progress: 85},
			want: 20,
		},
		{
			name: "barely started progress",
			goal: model.Goal{Progress: 1},
			want: 5,
		},
		{
			name: "due in two days",
			goal: model.Goal{DueDate: "2024-06-17"},
			want: 15,
		},
		{
			name: "due in three weeks",
			goal: model.Goal{DueDate: "2024-07-05"},
			want: 5,
		},
		{
			name: "past due is penalized",
			goal: model.Goal{DueDate: "2024-06-01"},
			want: -10,
		},
		{
			name: "malformed due date contributes nothing",
			goal: model.Goal{DueDate: "June 17th"},
			want: 0,
		},
		{
			name: "contributions sum",
			goal: model.Goal{
				UpdatedAt:     now,
				CurrentStreak: 7,
				Progress:      85,
				DueDate:       "2024-06-17",
			},
			want: 30 + 35 + 20 + 15,
		},
		{
			name: "past due can drag a bare goal negative",
			goal: model.Goal{DueDate: "2024-01-01"},
			want: -10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PriorityScore(&tt.goal, now); got != tt.want {
				t.Errorf("PriorityScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPriorityScoreIsPure(t *testing.T) {
	now := mustDay(t, "2024-06-15")
	goal := model.Goal{
		UpdatedAt:     now.AddDate(0, 0, -2),
		CurrentStreak: 3,
		Progress:      50,
		DueDate:       "2024-06-20",
	}
	before := goal

	first := PriorityScore(&goal, now)
	second := PriorityScore(&goal, now)

	if first != second {
		t.Errorf("repeated scoring disagreed: %d then %d", first, second)
	}
	if !reflect.DeepEqual(goal, before) {
		t.Errorf("scoring mutated the goal: %+v", goal)
	}
}

func TestTopGoals(t *testing.T) {
	now := mustDay(t, "2024-06-15")

	high := &model.Goal{GoalID: "high", CurrentStreak: 7, Progress: 85, UpdatedAt: now}
	mid := &model.Goal{GoalID: "mid", CurrentStreak: 3, UpdatedAt: now.AddDate(0, 0, -2)}
	low := &model.Goal{GoalID: "low"}
	goals := []*model.Goal{low, mid, high}

	top := TopGoals(goals, 2, now)
	if len(top) != 2 {
		t.Fatalf("TopGoals() returned %d goals, want 2", len(top))
	}
	if top[0].GoalID != "high" || top[1].GoalID != "mid" {
		t.Errorf("TopGoals() order = [%s %s], want [high mid]", top[0].GoalID, top[1].GoalID)
	}

	// The input slice keeps its order.
	if goals[0].GoalID != "low" || goals[2].GoalID != "high" {
		t.Errorf("TopGoals() reordered its input: %v", []string{goals[0].GoalID, goals[1].GoalID, goals[2].GoalID})
	}
}

func TestTopGoalsTiesKeepInputOrder(t *testing.T) {
	now := mustDay(t, "2024-06-15")

	first := &model.Goal{GoalID: "first", CurrentStreak: 3}
	second := &model.Goal{GoalID: "second", CurrentStreak: 3}

	top := TopGoals([]*model.Goal{first, second}, 2, now)
	if top[0].GoalID != "first" || top[1].GoalID != "second" {
		t.Errorf("tied goals reordered: [%s %s]", top[0].GoalID, top[1].GoalID)
	}
}

func TestTopGoalsLimit(t *testing.T) {
	now := mustDay(t, "2024-06-15")
	goals := []*model.Goal{
		{GoalID: "a"}, {GoalID: "b"}, {GoalID: "c"}, {GoalID: "d"}, {GoalID: "e"},
	}

	if got := TopGoals(goals, 0, now); len(got) != DefaultTopGoalsLimit {
		t.Errorf("zero limit returned %d goals, want default %d", len(got), DefaultTopGoalsLimit)
	}
	if got := TopGoals(goals, 10, now); len(got) != 5 {
		t.Errorf("oversized limit returned %d goals, want 5", len(got))
	}
	if got := TopGoals(nil, 3, now); len(got) != 0 {
		t.Errorf("nil input returned %d goals, want 0", len(got))
	}
}
