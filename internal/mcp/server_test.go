package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ganot/rhythm/internal/calendar"
	"github.com/ganot/rhythm/internal/domain/habit"
	"github.com/ganot/rhythm/internal/domain/journal"
	"github.com/ganot/rhythm/internal/repository"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, today calendar.Date) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	clock := calendar.NewFixedClock(today)

	logStore := habit.NewLogStore(kv, nil)
	require.NoError(t, logStore.Load(ctx))
	entryStore := journal.NewStore(kv, nil)
	require.NoError(t, entryStore.Load(ctx))

	server := NewServer(Config{
		Services: Services{
			Habits:  habit.NewService(logStore, habit.DefaultCatalog(), clock, nil),
			Journal: journal.NewService(entryStore, clock, nil),
		},
		Clock: clock,
	})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool[T any](t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) T {
	t.Helper()
	text, isError := call(t, session, name, args)
	require.False(t, isError, "%s failed: %s", name, text)

	var out T
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	return out
}

func callToolError(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	text, isError := call(t, session, name, args)
	require.True(t, isError, "%s should fail, got %s", name, text)
	return text
}

func call(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "unexpected content %T", res.Content[0])
	return text.Text, res.IsError
}

func TestServer_ListsTools(t *testing.T) {
	session := newTestSession(t, "2024-01-10")

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_habits", "toggle_habit", "backfill_habit", "reset_today", "get_day_log",
		"save_journal_entry", "update_journal_entry", "delete_journal_entry",
		"get_journal_entry", "list_journal_entries", "weekly_summary",
	}, names)
}

func TestServer_HabitTools(t *testing.T) {
	session := newTestSession(t, "2024-01-10")

	list := callTool[HabitListResponse](t, session, "list_habits", nil)
	require.Equal(t, "2024-01-10", list.Today)
	require.Len(t, list.Habits, 4)
	require.Equal(t, "prayer", list.Habits[0].ID)
	require.Equal(t, "message-circle", list.Habits[0].Icon)
	require.False(t, list.Habits[0].Completed)

	st := callTool[HabitStatusResponse](t, session, "backfill_habit", map[string]any{
		"habit_id": "prayer", "date": "2024-01-09", "completed": true,
	})
	require.False(t, st.Completed)
	require.Equal(t, 1, st.CurrentStreak)

	st = callTool[HabitStatusResponse](t, session, "toggle_habit", map[string]any{"habit_id": "prayer"})
	require.True(t, st.Completed)
	require.Equal(t, 2, st.CurrentStreak)
	require.Equal(t, 2, st.LongestStreak)

	day := callTool[DayLogResponse](t, session, "get_day_log", nil)
	require.True(t, day.Found)
	require.Equal(t, map[string]bool{"prayer": true}, day.Habits)

	list = callTool[HabitListResponse](t, session, "reset_today", nil)
	require.False(t, list.Habits[0].Completed)
	require.Equal(t, 1, list.Habits[0].CurrentStreak)

	day = callTool[DayLogResponse](t, session, "get_day_log", map[string]any{"date": "2024-01-10"})
	require.False(t, day.Found)
	require.Empty(t, day.Habits)
}

func TestServer_HabitErrors(t *testing.T) {
	session := newTestSession(t, "2024-01-10")

	tests := []struct {
		name string
		tool string
		args map[string]any
		code string
	}{
		{name: "unknown habit", tool: "toggle_habit", args: map[string]any{"habit_id": "fasting"}, code: "HABIT_NOT_FOUND"},
		{name: "future backfill", tool: "backfill_habit", args: map[string]any{"habit_id": "bible", "date": "2024-01-11", "completed": true}, code: "FUTURE_DATE"},
		{name: "malformed backfill date", tool: "backfill_habit", args: map[string]any{"habit_id": "bible", "date": "Jan 9", "completed": true}, code: "INVALID_DATE"},
		{name: "malformed day log date", tool: "get_day_log", args: map[string]any{"date": "yesterday"}, code: "INVALID_DATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Contains(t, callToolError(t, session, tt.tool, tt.args), tt.code)
		})
	}
}

func TestServer_JournalTools(t *testing.T) {
	session := newTestSession(t, "2024-01-10")

	saved := callTool[EntryResponse](t, session, "save_journal_entry", map[string]any{
		"content": "Be still and know",
		"tags":    []string{"psalms"},
	})
	require.NotEmpty(t, saved.ID)
	require.Equal(t, "2024-01-10", saved.Date)
	require.Equal(t, journal.DefaultTitle, saved.Title)
	require.Equal(t, 4, saved.WordCount)

	again := callTool[EntryResponse](t, session, "save_journal_entry", map[string]any{
		"date": "2024-01-10", "title": "Evening", "content": "Rest",
	})
	require.Equal(t, saved.ID, again.ID, "saving the same day keeps the entry id")
	require.Equal(t, "Evening", again.Title)

	older := callTool[EntryResponse](t, session, "save_journal_entry", map[string]any{
		"date": "2024-01-08", "title": "Monday", "content": "Morning walk",
	})

	got := callTool[GetEntryResponse](t, session, "get_journal_entry", nil)
	require.True(t, got.Found)
	require.Equal(t, saved.ID, got.Entry.ID)

	updated := callTool[EntryResponse](t, session, "update_journal_entry", map[string]any{
		"id": older.ID, "title": "Monday morning",
	})
	require.Equal(t, "Monday morning", updated.Title)
	require.Equal(t, "Morning walk", updated.Content)

	require.Contains(t, callToolError(t, session, "update_journal_entry", map[string]any{
		"id": older.ID, "date": "2024-01-10",
	}), "DUPLICATE_DATE")

	all := callTool[EntryListResponse](t, session, "list_journal_entries", nil)
	require.Len(t, all.Entries, 2)
	require.Equal(t, "2024-01-10", all.Entries[0].Date, "newest first")

	found := callTool[EntryListResponse](t, session, "list_journal_entries", map[string]any{"query": "MORNING"})
	require.Len(t, found.Entries, 1)
	require.Equal(t, older.ID, found.Entries[0].ID)

	ranged := callTool[EntryListResponse](t, session, "list_journal_entries", map[string]any{"start": "2024-01-01", "end": "2024-01-09"})
	require.Len(t, ranged.Entries, 1)

	require.Contains(t, callToolError(t, session, "list_journal_entries", map[string]any{"start": "2024-01-01"}), "INVALID_ARGUMENTS")

	deleted := callTool[DeleteEntryResponse](t, session, "delete_journal_entry", map[string]any{"id": older.ID})
	require.True(t, deleted.Deleted)
	deleted = callTool[DeleteEntryResponse](t, session, "delete_journal_entry", map[string]any{"id": older.ID})
	require.False(t, deleted.Deleted)

	missing := callTool[GetEntryResponse](t, session, "get_journal_entry", map[string]any{"id": older.ID})
	require.False(t, missing.Found)
	require.Nil(t, missing.Entry)
}

func TestServer_JournalErrors(t *testing.T) {
	session := newTestSession(t, "2024-01-10")

	require.Contains(t, callToolError(t, session, "save_journal_entry", map[string]any{"title": "  "}), "INVALID_INPUT")
	require.Contains(t, callToolError(t, session, "save_journal_entry", map[string]any{"date": "10/01/2024", "content": "x"}), "INVALID_DATE")
	require.Contains(t, callToolError(t, session, "update_journal_entry", map[string]any{"id": "nope", "title": "x"}), "ENTRY_NOT_FOUND")

	text := callToolError(t, session, "save_journal_entry", map[string]any{"title": "  "})
	require.Contains(t, text, "needs a title or content")
	text = callToolError(t, session, "update_journal_entry", map[string]any{"id": " ", "title": "x"})
	require.Contains(t, text, "INVALID_INPUT")
	require.Contains(t, text, "id is required")
	require.NotContains(t, text, "title or content")

	entry := callTool[EntryResponse](t, session, "save_journal_entry", map[string]any{"title": "Kept", "content": "body"})
	text = callToolError(t, session, "update_journal_entry", map[string]any{"id": entry.ID, "title": "", "content": " "})
	require.Contains(t, text, "needs a title or content")
}

func TestServer_WeeklySummary(t *testing.T) {
	session := newTestSession(t, "2024-01-10")

	callTool[HabitStatusResponse](t, session, "backfill_habit", map[string]any{"habit_id": "prayer", "date": "2024-01-07", "completed": true})
	callTool[HabitStatusResponse](t, session, "backfill_habit", map[string]any{"habit_id": "bible", "date": "2024-01-07", "completed": true})
	callTool[HabitStatusResponse](t, session, "toggle_habit", map[string]any{"habit_id": "quiet"})
	callTool[EntryResponse](t, session, "save_journal_entry", map[string]any{"content": "one two three"})

	summary := callTool[WeeklySummaryResponse](t, session, "weekly_summary", nil)
	require.Equal(t, "2024-01-07", summary.WeekStart)
	require.Equal(t, "2024-01-13", summary.WeekEnd)
	require.Equal(t, 2, summary.DaysCompleted)
	require.Equal(t, 5, summary.DaysMissed)
	require.Equal(t, 3, summary.TotalCompletedHabits)
	require.Equal(t, 3, summary.AverageWordCount)
	require.Len(t, summary.Days, 7)
	require.True(t, summary.Days[3].HasEntry)

	lastWeek := callTool[WeeklySummaryResponse](t, session, "weekly_summary", map[string]any{"date": "2024-01-03"})
	require.Equal(t, "2023-12-31", lastWeek.WeekStart)
	require.Zero(t, lastWeek.DaysCompleted)

	require.Contains(t, callToolError(t, session, "weekly_summary", map[string]any{"date": "next week"}), "INVALID_DATE")
}

func TestServer_DocResources(t *testing.T) {
	session := newTestSession(t, "2024-01-10")
	ctx := context.Background()

	list, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	uris := make([]string, 0, len(list.Resources))
	for _, r := range list.Resources {
		uris = append(uris, r.URI)
	}
	require.ElementsMatch(t, []string{"rhythm://docs/index", "rhythm://docs/streaks"}, uris)

	res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "rhythm://docs/streaks"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "Longest streak")
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{err: habit.ErrHabitNotFound, code: "HABIT_NOT_FOUND"},
		{err: habit.ErrFutureDate, code: "FUTURE_DATE"},
		{err: habit.ErrInvalidDate, code: "INVALID_DATE"},
		{err: calendar.ErrInvalidDate, code: "INVALID_DATE"},
		{err: journal.ErrEntryNotFound, code: "ENTRY_NOT_FOUND"},
		{err: journal.ErrDuplicateDate, code: "DUPLICATE_DATE"},
		{err: journal.ErrInvalidInput, code: "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			apiErr := MapError(tt.err)
			require.NotNil(t, apiErr)
			require.Equal(t, tt.code, apiErr.Code)
		})
	}

	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(repository.ErrNotFound))
}
