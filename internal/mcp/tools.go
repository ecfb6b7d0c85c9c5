package mcp

import (
	"context"
	"fmt"

	"github.com/ganot/rhythm/internal/calendar"
	"github.com/ganot/rhythm/internal/domain/habit"
	"github.com/ganot/rhythm/internal/domain/journal"
	"github.com/ganot/rhythm/internal/stats"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type tools struct {
	habits  HabitService
	journal JournalService
	clock   calendar.Clock
}

func registerTools(server *sdkmcp.Server, t *tools) {
	// Habits
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_habits",
		Description: "List every habit with today's completion flag and its current and longest streaks",
	}, t.listHabits)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_habit",
		Description: "Flip today's completion flag for one habit and return its updated streaks",
	}, t.toggleHabit)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "backfill_habit",
		Description: "Mark or clear a habit on a past day (or today). Future dates are rejected",
	}, t.backfillHabit)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reset_today",
		Description: "Clear every completion recorded for today",
	}, t.resetToday)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_day_log",
		Description: "Get the raw completion flags recorded for one day",
	}, t.getDayLog)

	// Journal
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_journal_entry",
		Description: "Write the journal entry for a day. A day holds one entry; saving again replaces its text and keeps its id",
	}, t.saveJournalEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_journal_entry",
		Description: "Change selected fields of a journal entry by id",
	}, t.updateJournalEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_journal_entry",
		Description: "Delete a journal entry by id. Unknown ids report deleted=false",
	}, t.deleteJournalEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_journal_entry",
		Description: "Get a journal entry by id, or by date (today when both are omitted)",
	}, t.getJournalEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_journal_entries",
		Description: "List journal entries newest first, optionally filtered by text; with start and end, list that inclusive range oldest first",
	}, t.listJournalEntries)

	// Stats
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "weekly_summary",
		Description: "Summarize a Sunday-to-Saturday week: days with a completed habit, completion rate, habit total and average journal word count",
	}, t.weeklySummary)
}

func (t *tools) listHabits(_ context.Context, _ *sdkmcp.CallToolRequest, _ ListHabitsParams) (*sdkmcp.CallToolResult, HabitListResponse, error) {
	statuses := t.habits.Statuses()
	resp := HabitListResponse{
		Today:  t.clock.Today().String(),
		Habits: make([]HabitStatusResponse, 0, len(statuses)),
	}
	for _, st := range statuses {
		resp.Habits = append(resp.Habits, habitStatusResponse(st))
	}
	return nil, resp, nil
}

func (t *tools) toggleHabit(ctx context.Context, _ *sdkmcp.CallToolRequest, in ToggleHabitParams) (*sdkmcp.CallToolResult, HabitStatusResponse, error) {
	st, err := t.habits.Toggle(ctx, habit.HabitID(in.HabitID))
	if err != nil {
		return nil, HabitStatusResponse{}, toolError(err)
	}
	return nil, habitStatusResponse(st), nil
}

func (t *tools) backfillHabit(ctx context.Context, _ *sdkmcp.CallToolRequest, in BackfillHabitParams) (*sdkmcp.CallToolResult, HabitStatusResponse, error) {
	st, err := t.habits.Backfill(ctx, habit.BackfillRequest{
		HabitID:   habit.HabitID(in.HabitID),
		Date:      in.Date,
		Completed: in.Completed,
	})
	if err != nil {
		return nil, HabitStatusResponse{}, toolError(err)
	}
	return nil, habitStatusResponse(st), nil
}

func (t *tools) resetToday(ctx context.Context, req *sdkmcp.CallToolRequest, _ ResetTodayParams) (*sdkmcp.CallToolResult, HabitListResponse, error) {
	if err := t.habits.ResetToday(ctx); err != nil {
		return nil, HabitListResponse{}, toolError(err)
	}
	return t.listHabits(ctx, req, ListHabitsParams{})
}

func (t *tools) getDayLog(_ context.Context, _ *sdkmcp.CallToolRequest, in GetDayLogParams) (*sdkmcp.CallToolResult, DayLogResponse, error) {
	date := in.Date
	if date == "" {
		date = t.clock.Today().String()
	}
	log, found, err := t.habits.Log(date)
	if err != nil {
		return nil, DayLogResponse{}, toolError(err)
	}
	habits := log.Completions
	if habits == nil {
		habits = map[string]bool{}
	}
	return nil, DayLogResponse{Date: date, Found: found, Habits: habits}, nil
}

func (t *tools) saveJournalEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in SaveJournalEntryParams) (*sdkmcp.CallToolResult, EntryResponse, error) {
	entry, err := t.journal.Save(ctx, journal.SaveRequest{
		Date:    in.Date,
		Title:   in.Title,
		Content: in.Content,
		Tags:    in.Tags,
	})
	if err != nil {
		return nil, EntryResponse{}, toolError(err)
	}
	return nil, entryResponse(entry), nil
}

func (t *tools) updateJournalEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateJournalEntryParams) (*sdkmcp.CallToolResult, EntryResponse, error) {
	entry, err := t.journal.Update(ctx, in.ID, journal.UpdateRequest{
		Date:    in.Date,
		Title:   in.Title,
		Content: in.Content,
		Tags:    in.Tags,
	})
	if err != nil {
		return nil, EntryResponse{}, toolError(err)
	}
	return nil, entryResponse(entry), nil
}

func (t *tools) deleteJournalEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteJournalEntryParams) (*sdkmcp.CallToolResult, DeleteEntryResponse, error) {
	deleted, err := t.journal.Delete(ctx, in.ID)
	if err != nil {
		return nil, DeleteEntryResponse{}, toolError(err)
	}
	return nil, DeleteEntryResponse{ID: in.ID, Deleted: deleted}, nil
}

func (t *tools) getJournalEntry(_ context.Context, _ *sdkmcp.CallToolRequest, in GetJournalEntryParams) (*sdkmcp.CallToolResult, GetEntryResponse, error) {
	var (
		entry journal.Entry
		found bool
	)
	if in.ID != "" {
		entry, found = t.journal.Get(in.ID)
	} else {
		date := in.Date
		if date == "" {
			date = t.clock.Today().String()
		}
		var err error
		entry, found, err = t.journal.ByDate(date)
		if err != nil {
			return nil, GetEntryResponse{}, toolError(err)
		}
	}

	resp := GetEntryResponse{Found: found}
	if found {
		e := entryResponse(entry)
		resp.Entry = &e
	}
	return nil, resp, nil
}

func (t *tools) listJournalEntries(_ context.Context, _ *sdkmcp.CallToolRequest, in ListJournalEntriesParams) (*sdkmcp.CallToolResult, EntryListResponse, error) {
	switch {
	case in.Start != "" && in.End != "":
		entries, err := t.journal.Range(in.Start, in.End)
		if err != nil {
			return nil, EntryListResponse{}, toolError(err)
		}
		return nil, entryListResponse(entries), nil
	case in.Start != "" || in.End != "":
		return nil, EntryListResponse{}, toolError(fmt.Errorf("%w: start and end must be given together", errInvalidArguments))
	default:
		return nil, entryListResponse(t.journal.Search(in.Query)), nil
	}
}

func (t *tools) weeklySummary(_ context.Context, _ *sdkmcp.CallToolRequest, in WeeklySummaryParams) (*sdkmcp.CallToolResult, WeeklySummaryResponse, error) {
	day := t.clock.Today()
	if in.Date != "" {
		d, err := calendar.Parse(in.Date)
		if err != nil {
			return nil, WeeklySummaryResponse{}, toolError(err)
		}
		day = d
	}

	summary, err := stats.Weekly(day, t.habits.Logs(), t.journal.List())
	if err != nil {
		return nil, WeeklySummaryResponse{}, toolError(err)
	}
	return nil, weeklySummaryResponse(summary), nil
}
