package usecase

import (
	"log"
	"sort"
	"time"

	"main/model"
)

// StreakResult is the outcome of a full streak recomputation.
// LastCheckinDate is empty when no parseable check-ins remain.
type StreakResult struct {
	Streak          int    `json:"streak"`
	LastCheckinDate string `json:"last_checkin_date,omitempty"`
}

// NormalizeCheckinDate reduces an entry to its canonical YYYY-MM-DD day.
// A well-formed date string wins over the full timestamp; entries with
// neither are unusable and reported as such instead of failing.
func NormalizeCheckinDate(entry model.CheckinEntry) (string, bool) {
	if entry.Date != "" {
		if day, err := time.Parse(dayFormat, entry.Date); err == nil {
			return day.Format(dayFormat), true
		}
	}
	if !entry.CreatedAt.IsZero() {
		return entry.CreatedAt.Format(dayFormat), true
	}
	return "", false
}

// RecalculateStreak derives the current consecutive-day streak and the most
// recent check-in day from the full check-in history. It is used after a
// deletion: the removed entry may sit anywhere in the run, so the old count
// cannot simply be decremented.
//
// Malformed entries are skipped, same-day entries collapse to one streak
// day, and the walk is anchored at today or, when today has no check-in, at
// the newest check-in day. The streak is therefore the unbroken run ending
// at the most recent check-in, even if that run stopped before today.
func RecalculateStreak(history []model.CheckinEntry, today time.Time) StreakResult {
	seen := make(map[string]bool, len(history))
	days := make([]string, 0, len(history))
	for _, entry := range history {
		day, ok := NormalizeCheckinDate(entry)
		if !ok {
			log.Printf("skipping check-in %s: unparsable date %q", entry.CheckinID, entry.Date)
			continue
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}

	if len(days) == 0 {
		return StreakResult{}
	}

	// YYYY-MM-DD sorts lexicographically, so string order is date order.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	result := StreakResult{LastCheckinDate: days[0]}

	anchor, _ := time.Parse(dayFormat, today.Format(dayFormat))
	if days[0] < anchor.Format(dayFormat) {
		anchor, _ = time.Parse(dayFormat, days[0])
	}

	expected := anchor.Format(dayFormat)
	for _, day := range days {
		if day != expected {
			// Re-derive the expected day from the streak counted so far.
			// This tolerates a scan that drifted out of step with the
			// per-entry decrement; a second miss means the run is broken.
			expected = anchor.AddDate(0, 0, -result.Streak).Format(dayFormat)
			if day != expected {
				break
			}
		}
		result.Streak++
		expected = anchor.AddDate(0, 0, -result.Streak).Format(dayFormat)
	}

	return result
}

// AdvanceStreak returns the streak value after logging a check-in dated
// today. A second check-in on the same day leaves the streak untouched;
// a one-day gap extends it; anything longer starts over at 1.
func AdvanceStreak(goal *model.Goal, today time.Time) int {
	todayStr := today.Format(dayFormat)
	if goal.LastCheckinDate == todayStr {
		return goal.CurrentStreak
	}

	if goal.LastCheckinDate != "" {
		if last, err := time.Parse(dayFormat, goal.LastCheckinDate); err == nil {
			day, _ := time.Parse(dayFormat, todayStr)
			if int(day.Sub(last).Hours()/24) == 1 {
				return goal.CurrentStreak + 1
			}
		}
	}
	return 1
}
