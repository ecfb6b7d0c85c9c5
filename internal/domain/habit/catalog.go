package habit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/rhythm/internal/repository"
)

var knownIDs = map[HabitID]bool{
	Prayer:  true,
	Bible:   true,
	Journal: true,
	Quiet:   true,
}

// Valid reports whether id is one of the fixed habits.
func (id HabitID) Valid() bool {
	return knownIDs[id]
}

// LoadCatalog reads the persisted habit catalog. A missing, malformed, or
// empty catalog falls back to DefaultCatalog, which is then written back.
// Entries with ids outside the fixed set are dropped.
func LoadCatalog(ctx context.Context, kv repository.KeyValueStore, logger *slog.Logger) ([]Habit, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	raw, err := kv.Get(ctx, repository.KeyHabits)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading habit catalog: %w", err)
	}

	if err == nil {
		var stored []Habit
		if jsonErr := json.Unmarshal([]byte(raw), &stored); jsonErr != nil {
			logger.Warn("discarding malformed habit catalog", "error", jsonErr)
		} else if catalog := filterKnown(stored, logger); len(catalog) > 0 {
			return catalog, nil
		}
	}

	catalog := DefaultCatalog()
	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("encoding habit catalog: %w", err)
	}
	if err := kv.Put(ctx, repository.KeyHabits, string(data)); err != nil {
		// The defaults are still usable for this process.
		logger.Warn("failed to persist default habit catalog", "error", err)
	}
	return catalog, nil
}

func filterKnown(stored []Habit, logger *slog.Logger) []Habit {
	seen := make(map[HabitID]bool, len(stored))
	catalog := make([]Habit, 0, len(stored))
	for _, h := range stored {
		if !h.ID.Valid() || seen[h.ID] {
			logger.Warn("skipping catalog entry", "habit_id", h.ID)
			continue
		}
		seen[h.ID] = true
		catalog = append(catalog, h)
	}
	return catalog
}
