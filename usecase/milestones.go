package usecase

import (
	"math"

	"main/model"
)

// MilestoneProgress recomputes goal progress from the full milestone list:
// round(100 * completed / total). Standalone and check-in-derived milestones
// count the same. Returns 0 for an empty list; callers leave progress alone
// in that case since milestone-driven progress only applies when milestones
// exist.
func MilestoneProgress(milestones []model.Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	completed := 0
	for _, m := range milestones {
		if m.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) * 100 / float64(len(milestones))))
}

// ClampProgress bounds a directly-edited progress value to [0,100].
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
