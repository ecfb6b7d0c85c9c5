package habit

import (
	"context"

	"github.com/ganot/rhythm/internal/calendar"
)

// Store provides the daily log operations the service relies on.
type Store interface {
	UpsertCompletion(ctx context.Context, date calendar.Date, habitID string, completed bool) error
	ToggleCompletion(ctx context.Context, date calendar.Date, habitID string) (bool, error)
	GetLog(date calendar.Date) (DailyLog, bool)
	RemoveLog(ctx context.Context, date calendar.Date) error
	ListLogs() []DailyLog
}
