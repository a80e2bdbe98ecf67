package usecase

import (
	"testing"
	"time"

	"main/model"
)

func entries(days ...string) []model.CheckinEntry {
	history := make([]model.CheckinEntry, len(days))
	for i, day := range days {
		history[i] = model.CheckinEntry{
			CheckinID: day,
			Date:      day,
		}
	}
	return history
}

func TestRecalculateStreak(t *testing.T) {
	tests := []struct {
		name     string
		history  []model.CheckinEntry
		today    string
		want     int
		wantLast string
	}{
		{
			name:     "empty history",
			history:  nil,
			today:    "2024-01-05",
			want:     0,
			wantLast: "",
		},
		{
			name:     "three day run ending today",
			history:  entries("2024-01-03", "2024-01-04", "2024-01-05"),
			today:    "2024-01-05",
			want:     3,
			wantLast: "2024-01-05",
		},
		{
			name:     "run ends yesterday",
			history:  entries("2024-01-03", "2024-01-04"),
			today:    "2024-01-05",
			want:     2,
			wantLast: "2024-01-04",
		},
		{
			name: "run ended before yesterday still counts from its end",
			// Today is the 5th, the last check-in was the 3rd. The run
			// ending at the 3rd is three days long.
			history:  entries("2024-01-01", "2024-01-02", "2024-01-03"),
			today:    "2024-01-05",
			want:     3,
			wantLast: "2024-01-03",
		},
		{
			name:     "gap inside history breaks the run",
			history:  entries("2024-01-01", "2024-01-02", "2024-01-04", "2024-01-05"),
			today:    "2024-01-05",
			want:     2,
			wantLast: "2024-01-05",
		},
		{
			name:     "duplicate days collapse",
			history:  entries("2024-01-04", "2024-01-04", "2024-01-05", "2024-01-05"),
			today:    "2024-01-05",
			want:     2,
			wantLast: "2024-01-05",
		},
		{
			name:     "single check-in today",
			history:  entries("2024-01-05"),
			today:    "2024-01-05",
			want:     1,
			wantLast: "2024-01-05",
		},
		{
			name:     "unordered input",
			history:  entries("2024-01-05", "2024-01-03", "2024-01-04"),
			today:    "2024-01-05",
			want:     3,
			wantLast: "2024-01-05",
		},
		{
			name: "streak crosses a month boundary",
			history: entries(
				"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02",
			),
			today:    "2024-02-02",
			want:     4,
			wantLast: "2024-02-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today, err := time.Parse(dayFormat, tt.today)
			if err != nil {
				t.Fatalf("bad test date %q: %v", tt.today, err)
			}

			result := RecalculateStreak(tt.history, today)
			if result.Streak != tt.want {
				t.Errorf("RecalculateStreak() streak = %d, want %d", result.Streak, tt.want)
			}
			if result.LastCheckinDate != tt.wantLast {
				t.Errorf("RecalculateStreak() last date = %q, want %q", result.LastCheckinDate, tt.wantLast)
			}
		})
	}
}

func TestRecalculateStreakSkipsMalformedEntries(t *testing.T) {
	today, _ := time.Parse(dayFormat, "2024-01-05")

	history := []model.CheckinEntry{
		{CheckinID: "good-1", Date: "2024-01-04"},
		{CheckinID: "bad", Date: "not-a-date"}, // no CreatedAt fallback either
		{CheckinID: "good-2", Date: "2024-01-05"},
	}

	result := RecalculateStreak(history, today)
	if result.Streak != 2 {
		t.Errorf("streak = %d, want 2 (malformed entry should be skipped)", result.Streak)
	}
	if result.LastCheckinDate != "2024-01-05" {
		t.Errorf("last date = %q, want 2024-01-05", result.LastCheckinDate)
	}
}

func TestRecalculateStreakUsesCreatedAtFallback(t *testing.T) {
	today, _ := time.Parse(dayFormat, "2024-01-05")

	history := []model.CheckinEntry{
		{CheckinID: "dated", Date: "2024-01-05"},
		{CheckinID: "timestamped", CreatedAt: time.Date(2024, 1, 4, 23, 50, 0, 0, time.UTC)},
	}

	result := RecalculateStreak(history, today)
	if result.Streak != 2 {
		t.Errorf("streak = %d, want 2 (CreatedAt should stand in for a missing date)", result.Streak)
	}
}

func TestNormalizeCheckinDate(t *testing.T) {
	createdAt := time.Date(2024, 1, 4, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		entry  model.CheckinEntry
		want   string
		wantOK bool
	}{
		{
			name:   "date string wins over timestamp",
			entry:  model.CheckinEntry{Date: "2024-01-05", CreatedAt: createdAt},
			want:   "2024-01-05",
			wantOK: true,
		},
		{
			name:   "timestamp fallback",
			entry:  model.CheckinEntry{CreatedAt: createdAt},
			want:   "2024-01-04",
			wantOK: true,
		},
		{
			name:   "malformed date falls back to timestamp",
			entry:  model.CheckinEntry{Date: "05/01/2024", CreatedAt: createdAt},
			want:   "2024-01-04",
			wantOK: true,
		},
		{
			name:   "nothing usable",
			entry:  model.CheckinEntry{Description: "went for a run"},
			want:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeCheckinDate(tt.entry)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeCheckinDate() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAdvanceStreak(t *testing.T) {
	today, _ := time.Parse(dayFormat, "2024-01-05")

	tests := []struct {
		name string
		goal model.Goal
		want int
	}{
		{
			name: "first ever check-in",
			goal: model.Goal{},
			want: 1,
		},
		{
			name: "second check-in same day keeps the count",
			goal: model.Goal{CurrentStreak: 4, LastCheckinDate: "2024-01-05"},
			want: 4,
		},
		{
			name: "consecutive day extends",
			goal: model.Goal{CurrentStreak: 4, LastCheckinDate: "2024-01-04"},
			want: 5,
		},
		{
			name: "two day gap resets",
			goal: model.Goal{CurrentStreak: 4, LastCheckinDate: "2024-01-03"},
			want: 1,
		},
		{
			name: "malformed stored date resets",
			goal: model.Goal{CurrentStreak: 4, LastCheckinDate: "garbage"},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdvanceStreak(&tt.goal, today); got != tt.want {
				t.Errorf("AdvanceStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Deleting a check-in older than the current run must not change the streak;
// recomputation from the remaining history has to agree with the old value.
func TestRecalculateStreakAfterDeletingOldEntry(t *testing.T) {
	today, _ := time.Parse(dayFormat, "2024-01-10")

	full := entries("2024-01-02", "2024-01-08", "2024-01-09", "2024-01-10")
	before := RecalculateStreak(full, today)

	withoutOld := entries("2024-01-08", "2024-01-09", "2024-01-10")
	after := RecalculateStreak(withoutOld, today)

	if before.Streak != 3 || after.Streak != 3 {
		t.Errorf("streaks = %d before, %d after; want 3 for both", before.Streak, after.Streak)
	}
}
