package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ganot/rhythm/internal/calendar"
	"github.com/ganot/rhythm/internal/repository"
)

// Store owns the journal entries and writes the whole collection through to
// the key-value store on every mutation. Date uniqueness is checked under the
// store lock so upsert-by-date and id-based updates cannot interleave.
type Store struct {
	kv     repository.KeyValueStore
	logger *slog.Logger

	mu      sync.RWMutex
	entries []Entry
}

// NewStore creates an empty store. Call Load to read persisted entries.
func NewStore(kv repository.KeyValueStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, logger: logger}
}

// Load replaces the in-memory entries with the persisted collection. A
// missing or malformed blob yields an empty collection.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, repository.KeyJournalEntries)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("loading journal entries: %w", err)
	}

	var stored []Entry
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(raw), &stored); jsonErr != nil {
			s.logger.Warn("discarding malformed journal entries", "error", jsonErr)
			stored = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = stored
	if dupes := s.duplicateDatesLocked(); len(dupes) > 0 {
		s.logger.Warn("journal has several entries for one date", "dates", dupes)
	}
	s.logger.Debug("journal entries loaded", "count", len(s.entries))
	return nil
}

// SaveByDate updates the entry already held for e.Date in place, keeping its
// id, or appends e when the date is free.
func (s *Store) SaveByDate(ctx context.Context, e Entry) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := false
	i := s.indexByDateLocked(e.Date)
	if i >= 0 {
		s.entries[i].Title = e.Title
		s.entries[i].Content = e.Content
		s.entries[i].Tags = e.Tags
	} else {
		s.entries = append(s.entries, e)
		i = len(s.entries) - 1
		created = true
	}

	return s.entries[i].clone(), created, s.persistLocked(ctx)
}

// Update applies fn to the entry with id. The entry may not move onto a date
// already held by another entry, and an error from fn leaves it unchanged.
func (s *Store) Update(ctx context.Context, id string, fn func(*Entry) error) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByIDLocked(id)
	if i < 0 {
		return Entry{}, ErrEntryNotFound
	}

	updated := s.entries[i].clone()
	if err := fn(&updated); err != nil {
		return Entry{}, err
	}
	if updated.Date != s.entries[i].Date {
		if j := s.indexByDateLocked(updated.Date); j >= 0 && j != i {
			return Entry{}, fmt.Errorf("%w: %s", ErrDuplicateDate, updated.Date)
		}
	}
	updated.ID = id
	s.entries[i] = updated

	return updated.clone(), s.persistLocked(ctx)
}

// Delete removes the entry with id and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByIDLocked(id)
	if i < 0 {
		return false, nil
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return true, s.persistLocked(ctx)
}

// Get returns the entry with id.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexByIDLocked(id)
	if i < 0 {
		return Entry{}, false
	}
	return s.entries[i].clone(), true
}

// ByDate returns the first entry held for date.
func (s *Store) ByDate(date calendar.Date) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexByDateLocked(date)
	if i < 0 {
		return Entry{}, false
	}
	return s.entries[i].clone(), true
}

// List returns a snapshot of every entry in insertion order.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.clone()
	}
	return out
}

func (s *Store) indexByIDLocked(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) indexByDateLocked(date calendar.Date) int {
	for i, e := range s.entries {
		if e.Date == date {
			return i
		}
	}
	return -1
}

func (s *Store) duplicateDatesLocked() []calendar.Date {
	seen := make(map[calendar.Date]int, len(s.entries))
	var dupes []calendar.Date
	for _, e := range s.entries {
		seen[e.Date]++
		if seen[e.Date] == 2 {
			dupes = append(dupes, e.Date)
		}
	}
	return dupes
}

func (s *Store) persistLocked(ctx context.Context) error {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding journal entries: %w", err)
	}
	if err := s.kv.Put(ctx, repository.KeyJournalEntries, string(data)); err != nil {
		s.logger.Error("failed to persist journal entries", "error", err)
		return fmt.Errorf("persisting journal entries: %w", err)
	}
	return nil
}
