package usecase

import (
	"testing"

	"main/model"
)

func milestones(completed ...bool) []model.Milestone {
	ms := make([]model.Milestone, len(completed))
	for i, done := range completed {
		ms[i] = model.Milestone{Completed: done}
	}
	return ms
}

func TestMilestoneProgress(t *testing.T) {
	tests := []struct {
		name       string
		milestones []model.Milestone
		want       int
	}{
		{name: "no milestones", milestones: nil, want: 0},
		{name: "none completed", milestones: milestones(false, false), want: 0},
		{name: "all completed", milestones: milestones(true, true, true), want: 100},
		{name: "one of three rounds to 33", milestones: milestones(true, false, false), want: 33},
		{name: "two of three rounds to 67", milestones: milestones(true, true, false), want: 67},
		{name: "half", milestones: milestones(true, false), want: 50},
		{name: "one of six rounds to 17", milestones: milestones(true, false, false, false, false, false), want: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MilestoneProgress(tt.milestones); got != tt.want {
				t.Errorf("MilestoneProgress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClampProgress(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{140, 100},
	}

	for _, tt := range tests {
		if got := ClampProgress(tt.in); got != tt.want {
			t.Errorf("ClampProgress(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
