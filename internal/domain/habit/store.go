package habit

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

// LogStore owns the canonical, deduplicated-by-date list of daily logs and
// writes the whole collection through to the key-value store on every
// mutation.
type LogStore struct {
	kv     repository.KeyValueStore
	logger *slog.Logger

	mu    sync.RWMutex
	logs  []DailyLog
	index map[calendar.Date]int
}

// NewLogStore creates an empty store. Call Load to read persisted logs.
func NewLogStore(kv repository.KeyValueStore, logger *slog.Logger) *LogStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogStore{
		kv:     kv,
		logger: logger,
		index:  make(map[calendar.Date]int),
	}
}

// Load replaces the in-memory logs with the persisted collection. A missing
// or malformed blob yields an empty collection; only a failing read is an
// error.
func (s *LogStore) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, repository.KeyHabitLogs)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("loading habit logs: %w", err)
	}

	var stored []DailyLog
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(raw), &stored); jsonErr != nil {
			s.logger.Warn("discarding malformed habit logs", "error", jsonErr)
			stored = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = nil
	s.index = make(map[calendar.Date]int, len(stored))
	for _, l := range stored {
		for id, done := range l.Completions {
			s.upsertLocked(l.Date, id, done)
		}
		if _, ok := s.index[l.Date]; !ok {
			s.appendLocked(l.Date)
		}
	}
	s.logger.Debug("habit logs loaded", "count", len(s.logs))
	return nil
}

// UpsertCompletion sets one habit's flag for date, creating the log when
// needed and leaving the other habits' flags alone. habitID is stored as is.
// The in-memory update always happens; the returned error only reports a
// failed write-through.
func (s *LogStore) UpsertCompletion(ctx context.Context, date calendar.Date, habitID string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upsertLocked(date, habitID, completed)
	return s.persistLocked(ctx)
}

// ToggleCompletion flips one habit's flag for date under a single lock and
// returns the new value. Like UpsertCompletion, the flip is kept in memory
// even when the write-through fails.
func (s *LogStore) ToggleCompletion(ctx context.Context, date calendar.Date, habitID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := true
	if i, ok := s.index[date]; ok {
		completed = !s.logs[i].Completions[habitID]
	}
	s.upsertLocked(date, habitID, completed)
	return completed, s.persistLocked(ctx)
}

// GetLog returns a copy of the log for date.
func (s *LogStore) GetLog(date calendar.Date) (DailyLog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[date]
	if !ok {
		return DailyLog{}, false
	}
	return s.logs[i].Clone(), true
}

// RemoveLog deletes the log for date. Absent dates are a no-op.
func (s *LogStore) RemoveLog(ctx context.Context, date calendar.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[date]
	if !ok {
		return nil
	}
	s.logs = append(s.logs[:i], s.logs[i+1:]...)
	s.reindexLocked()
	return s.persistLocked(ctx)
}

// ListLogs returns a snapshot of every log in insertion order. Callers sort
// when order matters.
func (s *LogStore) ListLogs() []DailyLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]DailyLog, len(s.logs))
	for i, l := range s.logs {
		out[i] = l.Clone()
	}
	return out
}

func (s *LogStore) upsertLocked(date calendar.Date, habitID string, completed bool) {
	i, ok := s.index[date]
	if !ok {
		i = s.appendLocked(date)
	}
	s.logs[i].Completions[habitID] = completed
}

func (s *LogStore) appendLocked(date calendar.Date) int {
	s.logs = append(s.logs, DailyLog{Date: date, Completions: map[string]bool{}})
	i := len(s.logs) - 1
	s.index[date] = i
	return i
}

func (s *LogStore) reindexLocked() {
	s.index = make(map[calendar.Date]int, len(s.logs))
	for i, l := range s.logs {
		s.index[l.Date] = i
	}
}

func (s *LogStore) persistLocked(ctx context.Context) error {
	logs := s.logs
	if logs == nil {
		logs = []DailyLog{}
	}
	data, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("encoding habit logs: %w", err)
	}
	if err := s.kv.Put(ctx, repository.KeyHabitLogs, string(data)); err != nil {
		s.logger.Error("failed to persist habit logs", "error", err)
		return fmt.Errorf("persisting habit logs: %w", err)
	}
	return nil
}
