// Package stats derives read-only summaries from habit logs and journal
// entries. Nothing here touches persistence.
package stats

import (
	"fmt"

	"github.com/ganot/rhythm/internal/calendar"
	"github.com/ganot/rhythm/internal/domain/habit"
	"github.com/ganot/rhythm/internal/domain/journal"
)

// Day is one row of the weekly overview.
type Day struct {
	Date      calendar.Date `json:"date"`
	Completed bool          `json:"completed"`
	HasEntry  bool          `json:"has_entry"`
}

// WeeklySummary aggregates the Sunday-to-Saturday week containing a date.
type WeeklySummary struct {
	WeekStart            calendar.Date             `json:"week_start"`
	WeekEnd              calendar.Date             `json:"week_end"`
	DaysCompleted        int                       `json:"days_completed"`
	DaysMissed           int                       `json:"days_missed"`
	CompletionRate       float64                   `json:"completion_rate"`
	TotalCompletedHabits int                       `json:"total_completed_habits"`
	AverageWordCount     int                       `json:"average_word_count"`
	Days                 [calendar.DaysPerWeek]Day `json:"days"`
}

// Weekly summarizes the week containing today. A day counts as completed when
// its log has at least one completed habit.
func Weekly(today calendar.Date, logs []habit.DailyLog, entries []journal.Entry) (WeeklySummary, error) {
	week, err := calendar.Week(today)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("computing week: %w", err)
	}

	summary := WeeklySummary{
		WeekStart: week[0],
		WeekEnd:   week[len(week)-1],
	}
	slot := make(map[calendar.Date]int, len(week))
	for i, d := range week {
		summary.Days[i].Date = d
		slot[d] = i
	}

	for _, l := range logs {
		i, ok := slot[l.Date]
		if !ok {
			continue
		}
		n := l.CompletedCount()
		summary.TotalCompletedHabits += n
		if n > 0 {
			summary.Days[i].Completed = true
		}
	}

	words, written := 0, 0
	for _, e := range entries {
		i, ok := slot[e.Date]
		if !ok {
			continue
		}
		summary.Days[i].HasEntry = true
		words += e.WordCount()
		written++
	}

	for _, d := range summary.Days {
		if d.Completed {
			summary.DaysCompleted++
		}
	}
	summary.DaysMissed = calendar.DaysPerWeek - summary.DaysCompleted
	summary.CompletionRate = float64(summary.DaysCompleted) / calendar.DaysPerWeek * 100
	summary.AverageWordCount = roundedMean(words, written)
	return summary, nil
}

// roundedMean divides total by n rounding half up; zero when n is zero.
func roundedMean(total, n int) int {
	if n == 0 {
		return 0
	}
	return (2*total + n) / (2 * n)
}
