package repository

import "context"

// KeyValueStore is the durable persistence collaborator. Each key holds one
// serialized collection.
type KeyValueStore interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// Well-known keys for the persisted collections.
const (
	KeyHabits         = "habits"
	KeyHabitLogs      = "habitLogs"
	KeyJournalEntries = "journalEntries"
)
