package habit

import "github.com/ganot/rhythm/internal/calendar"

// HabitID identifies one of the fixed routine habits.
type HabitID string

const (
	Prayer  HabitID = "prayer"
	Bible   HabitID = "bible"
	Journal HabitID = "journal"
	Quiet   HabitID = "quiet"
)

// Icon is a presentation tag for a habit; the core never resolves it.
type Icon string

const (
	IconMessageCircle Icon = "message-circle"
	IconBookOpen      Icon = "book-open"
	IconPen           Icon = "pen"
	IconTimer         Icon = "timer"
)

// Habit is the immutable identity and display metadata of a habit.
type Habit struct {
	ID          HabitID `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        Icon    `json:"icon"`
}

// DefaultCatalog returns the built-in habits in display order.
func DefaultCatalog() []Habit {
	return []Habit{
		{ID: Prayer, Name: "Talk to God", Description: "Spend 2 minutes in prayer", Icon: IconMessageCircle},
		{ID: Bible, Name: "Bible Reading", Description: "Read 1 chapter", Icon: IconBookOpen},
		{ID: Journal, Name: "Journal a Thought", Description: "Write down what's on your heart", Icon: IconPen},
		{ID: Quiet, Name: "Quiet Time", Description: "3-5 minutes of stillness", Icon: IconTimer},
	}
}

// DailyLog holds the completion flags recorded for one calendar date.
// A habit id missing from Completions counts as not completed.
type DailyLog struct {
	Date        calendar.Date   `json:"date"`
	Completions map[string]bool `json:"habits"`
}

// LogDate returns the log's date key.
func (l DailyLog) LogDate() calendar.Date {
	return l.Date
}

// Completed reports whether habitID is marked complete in this log.
func (l DailyLog) Completed(habitID string) bool {
	return l.Completions[habitID]
}

// CompletedCount returns how many habits are marked complete.
func (l DailyLog) CompletedCount() int {
	n := 0
	for _, done := range l.Completions {
		if done {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so callers can't mutate store state.
func (l DailyLog) Clone() DailyLog {
	completions := make(map[string]bool, len(l.Completions))
	for k, v := range l.Completions {
		completions[k] = v
	}
	return DailyLog{Date: l.Date, Completions: completions}
}

// HabitStatus is the per-habit projection handed to the presentation layer.
type HabitStatus struct {
	Habit
	Completed     bool `json:"completed"`
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
}
