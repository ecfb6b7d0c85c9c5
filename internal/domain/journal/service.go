package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ganot/rhythm/internal/calendar"
	"github.com/google/uuid"
)

// DefaultTitle is used when an entry is saved without a title.
const DefaultTitle = "Untitled Entry"

// Service handles journal operations.
type Service struct {
	store  *Store
	clock  calendar.Clock
	logger *slog.Logger
}

// NewService creates a new journal service.
func NewService(store *Store, clock calendar.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, clock: clock, logger: logger}
}

// Save creates or replaces the entry for a date. An existing entry keeps its
// id; a new one gets a fresh uuid.
func (s *Service) Save(ctx context.Context, req SaveRequest) (Entry, error) {
	title, err := entryTitle(req.Title, req.Content)
	if err != nil {
		return Entry{}, err
	}

	date, err := s.dateOrToday(req.Date)
	if err != nil {
		return Entry{}, err
	}

	entry, created, err := s.store.SaveByDate(ctx, Entry{
		ID:      uuid.NewString(),
		Date:    date,
		Title:   title,
		Content: req.Content,
		Tags:    normalizeTags(req.Tags),
	})
	if err != nil {
		return entry, fmt.Errorf("saving journal entry: %w", err)
	}
	s.logger.Info("journal entry saved", "id", entry.ID, "date", entry.Date, "created", created)
	return entry, nil
}

// Update applies a partial update to the entry with id.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Entry, error) {
	if strings.TrimSpace(id) == "" {
		return Entry{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	var date calendar.Date
	if req.Date != nil {
		d, err := calendar.Parse(*req.Date)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: %q", ErrInvalidDate, *req.Date)
		}
		date = d
	}

	entry, err := s.store.Update(ctx, id, func(e *Entry) error {
		if req.Date != nil {
			e.Date = date
		}
		if req.Title != nil {
			e.Title = *req.Title
		}
		if req.Content != nil {
			e.Content = *req.Content
		}
		if req.Tags != nil {
			e.Tags = normalizeTags(req.Tags)
		}
		title, err := entryTitle(e.Title, e.Content)
		if err != nil {
			return err
		}
		e.Title = title
		return nil
	})
	if err != nil {
		return Entry{}, fmt.Errorf("updating journal entry: %w", err)
	}
	s.logger.Info("journal entry updated", "id", entry.ID, "date", entry.Date)
	return entry, nil
}

// Delete removes the entry with id. Unknown ids are a no-op reporting false.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return deleted, fmt.Errorf("deleting journal entry: %w", err)
	}
	if deleted {
		s.logger.Info("journal entry deleted", "id", id)
	}
	return deleted, nil
}

// Get returns the entry with id.
func (s *Service) Get(id string) (Entry, bool) {
	return s.store.Get(id)
}

// ByDate returns the entry for date.
func (s *Service) ByDate(date string) (Entry, bool, error) {
	d, err := calendar.Parse(date)
	if err != nil {
		return Entry{}, false, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	e, ok := s.store.ByDate(d)
	return e, ok, nil
}

// Today returns today's entry.
func (s *Service) Today() (Entry, bool) {
	return s.store.ByDate(s.clock.Today())
}

// Range returns entries dated within [start, end], oldest first.
func (s *Service) Range(start, end string) ([]Entry, error) {
	from, err := calendar.Parse(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, start)
	}
	to, err := calendar.Parse(end)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, end)
	}

	var out []Entry
	for _, e := range s.store.List() {
		if calendar.InRange(e.Date, from, to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// List returns every entry, newest first.
func (s *Service) List() []Entry {
	entries := s.store.List()
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries
}

// Search returns entries whose title or content contains query, ignoring
// case, newest first. An empty query matches everything.
func (s *Service) Search(query string) []Entry {
	needle := strings.ToLower(strings.TrimSpace(query))
	all := s.List()
	if needle == "" {
		return all
	}
	out := make([]Entry, 0, len(all))
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Title), needle) || strings.Contains(strings.ToLower(e.Content), needle) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Service) dateOrToday(date string) (calendar.Date, error) {
	if strings.TrimSpace(date) == "" {
		return s.clock.Today(), nil
	}
	d, err := calendar.Parse(date)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return d, nil
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// entryTitle trims title, substituting DefaultTitle when it is blank. An
// entry with neither a title nor content is rejected.
func entryTitle(title, content string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" && strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: an entry needs a title or content", ErrInvalidInput)
	}
	if title == "" {
		return DefaultTitle, nil
	}
	return title, nil
}
