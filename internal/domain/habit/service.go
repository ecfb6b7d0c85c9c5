package habit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/rhythm/internal/calendar"
	"github.com/ganot/rhythm/internal/streak"
)

// Service handles habit intents from the presentation layer.
type Service struct {
	store   Store
	catalog []Habit
	clock   calendar.Clock
	logger  *slog.Logger
}

// NewService creates a new habit service.
func NewService(store Store, catalog []Habit, clock calendar.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, catalog: catalog, clock: clock, logger: logger}
}

// BackfillRequest defines backfill inputs.
type BackfillRequest struct {
	HabitID   HabitID
	Date      string
	Completed bool
}

// Catalog returns the habit definitions in display order.
func (s *Service) Catalog() []Habit {
	out := make([]Habit, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Toggle flips today's completion flag for id.
func (s *Service) Toggle(ctx context.Context, id HabitID) (HabitStatus, error) {
	if _, err := s.habit(id); err != nil {
		return HabitStatus{}, err
	}

	today := s.clock.Today()
	completed, err := s.store.ToggleCompletion(ctx, today, string(id))
	if err != nil {
		return HabitStatus{}, fmt.Errorf("toggling habit: %w", err)
	}
	s.logger.Info("habit toggled", "habit_id", id, "date", today, "completed", completed)
	return s.Status(id)
}

// Backfill records a completion flag for a past date or today. Dates after
// today are rejected here; the store itself accepts any date.
func (s *Service) Backfill(ctx context.Context, req BackfillRequest) (HabitStatus, error) {
	if _, err := s.habit(req.HabitID); err != nil {
		return HabitStatus{}, err
	}
	date, err := calendar.Parse(req.Date)
	if err != nil {
		return HabitStatus{}, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}
	if date.After(s.clock.Today()) {
		return HabitStatus{}, ErrFutureDate
	}

	if err := s.store.UpsertCompletion(ctx, date, string(req.HabitID), req.Completed); err != nil {
		return HabitStatus{}, fmt.Errorf("backfilling habit: %w", err)
	}
	s.logger.Info("habit backfilled", "habit_id", req.HabitID, "date", date, "completed", req.Completed)
	return s.Status(req.HabitID)
}

// ResetToday removes today's log.
func (s *Service) ResetToday(ctx context.Context) error {
	today := s.clock.Today()
	if err := s.store.RemoveLog(ctx, today); err != nil {
		return fmt.Errorf("resetting today: %w", err)
	}
	s.logger.Info("today reset", "date", today)
	return nil
}

// Status returns today's flag and both streaks for id.
func (s *Service) Status(id HabitID) (HabitStatus, error) {
	h, err := s.habit(id)
	if err != nil {
		return HabitStatus{}, err
	}
	logs := s.store.ListLogs()
	return s.statusFor(h, logs, s.todayLog()), nil
}

// Statuses returns the status of every catalog habit, in catalog order.
func (s *Service) Statuses() []HabitStatus {
	logs := s.store.ListLogs()
	today := s.todayLog()

	ids := make([]string, len(s.catalog))
	for i, h := range s.catalog {
		ids[i] = string(h.ID)
	}
	streaks := streak.ComputeAll(logs, ids)

	out := make([]HabitStatus, len(s.catalog))
	for i, h := range s.catalog {
		r := streaks[string(h.ID)]
		out[i] = HabitStatus{
			Habit:         h,
			Completed:     today.Completed(string(h.ID)),
			CurrentStreak: r.Current,
			LongestStreak: r.Longest,
		}
	}
	return out
}

// Log returns the log recorded for date, if any.
func (s *Service) Log(date string) (DailyLog, bool, error) {
	d, err := calendar.Parse(date)
	if err != nil {
		return DailyLog{}, false, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	log, ok := s.store.GetLog(d)
	return log, ok, nil
}

// Logs returns a snapshot of every log.
func (s *Service) Logs() []DailyLog {
	return s.store.ListLogs()
}

func (s *Service) habit(id HabitID) (Habit, error) {
	for _, h := range s.catalog {
		if h.ID == id {
			return h, nil
		}
	}
	return Habit{}, fmt.Errorf("%w: %q", ErrHabitNotFound, id)
}

func (s *Service) todayLog() DailyLog {
	log, _ := s.store.GetLog(s.clock.Today())
	return log
}

func (s *Service) statusFor(h Habit, logs []DailyLog, today DailyLog) HabitStatus {
	r := streak.Compute(logs, string(h.ID))
	return HabitStatus{
		Habit:         h,
		Completed:     today.Completed(string(h.ID)),
		CurrentStreak: r.Current,
		LongestStreak: r.Longest,
	}
}
