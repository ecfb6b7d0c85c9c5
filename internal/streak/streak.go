package streak

import (
	"sort"
	"time"

	"github.com/ganot/rhythm/internal/calendar"
)

// Log is one day of completion flags.
type Log interface {
	LogDate() calendar.Date
	Completed(habitID string) bool
}

// Result carries both streak measures for a habit.
type Result struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

type day struct {
	date   time.Time
	counts bool
}

// Current returns the length of the run of counting days that ends at the
// most recent log. It is 0 when there are no logs or the most recent log does
// not count for habitID.
func Current[L Log](logs []L, habitID string) int {
	days := timeline(logs, habitID, true)
	if len(days) == 0 || !days[0].counts {
		return 0
	}

	streak := 1
	prev := days[0].date
	for _, d := range days[1:] {
		if !d.counts || daysApart(d.date, prev) != 1 {
			break
		}
		streak++
		prev = d.date
	}
	return streak
}

// Longest returns the longest run of counting days over all history.
func Longest[L Log](logs []L, habitID string) int {
	days := timeline(logs, habitID, false)

	longest, run := 0, 0
	var prev time.Time
	hasPrev := false
	for _, d := range days {
		if d.counts {
			if !hasPrev {
				run = 1
			} else {
				switch gap := daysApart(prev, d.date); {
				case gap == 1:
					run++
				case gap > 1:
					run = 1
				}
			}
			longest = max(longest, run)
		} else {
			run = 0
		}
		prev = d.date
		hasPrev = true
	}
	return longest
}

// Compute returns both measures for habitID.
func Compute[L Log](logs []L, habitID string) Result {
	return Result{
		Current: Current(logs, habitID),
		Longest: Longest(logs, habitID),
	}
}

// ComputeAll returns a Result for every id in habitIDs.
func ComputeAll[L Log](logs []L, habitIDs []string) map[string]Result {
	results := make(map[string]Result, len(habitIDs))
	for _, id := range habitIDs {
		results[id] = Compute(logs, id)
	}
	return results
}

// timeline parses and orders the logs. Logs with malformed date keys are
// dropped; equal dates keep their input order.
func timeline[L Log](logs []L, habitID string, descending bool) []day {
	days := make([]day, 0, len(logs))
	for _, l := range logs {
		t, err := l.LogDate().Time()
		if err != nil {
			continue
		}
		days = append(days, day{date: t, counts: l.Completed(habitID)})
	}
	sort.SliceStable(days, func(i, j int) bool {
		if descending {
			return days[i].date.After(days[j].date)
		}
		return days[i].date.Before(days[j].date)
	})
	return days
}

func daysApart(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
