package journal

import (
	"strings"

	"github.com/ganot/rhythm/internal/calendar"
)

// Entry is a free-text journal entry. At most one entry per date is the
// intended usage; the ID is independent of the date.
type Entry struct {
	ID      string        `json:"id"`
	Date    calendar.Date `json:"date"`
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Tags    []string      `json:"tags,omitempty"`
}

// WordCount returns the number of whitespace-separated words in Content.
func (e Entry) WordCount() int {
	return len(strings.Fields(e.Content))
}

func (e Entry) clone() Entry {
	if e.Tags != nil {
		e.Tags = append([]string(nil), e.Tags...)
	}
	return e
}
