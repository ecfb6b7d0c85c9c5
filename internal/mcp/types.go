package mcp

import (
	"github.com/ganot/rhythm/internal/calendar"
	"github.com/ganot/rhythm/internal/domain/habit"
	"github.com/ganot/rhythm/internal/domain/journal"
	"github.com/ganot/rhythm/internal/stats"
)

type ListHabitsParams struct{}

type ToggleHabitParams struct {
	HabitID string `json:"habit_id" jsonschema:"habit id: prayer, bible, journal or quiet"`
}

type BackfillHabitParams struct {
	HabitID   string `json:"habit_id" jsonschema:"habit id: prayer, bible, journal or quiet"`
	Date      string `json:"date" jsonschema:"day to mark, YYYY-MM-DD, today or earlier"`
	Completed bool   `json:"completed" jsonschema:"true to mark done, false to clear"`
}

type ResetTodayParams struct{}

type GetDayLogParams struct {
	Date string `json:"date,omitempty" jsonschema:"YYYY-MM-DD; omit for today"`
}

type SaveJournalEntryParams struct {
	Date    string   `json:"date,omitempty" jsonschema:"YYYY-MM-DD; omit for today. Saving onto a date that already has an entry replaces it"`
	Title   string   `json:"title,omitempty" jsonschema:"entry title; defaults to Untitled Entry"`
	Content string   `json:"content,omitempty" jsonschema:"entry text"`
	Tags    []string `json:"tags,omitempty" jsonschema:"optional tags"`
}

type UpdateJournalEntryParams struct {
	ID      string   `json:"id" jsonschema:"entry id"`
	Date    *string  `json:"date,omitempty" jsonschema:"new date, YYYY-MM-DD"`
	Title   *string  `json:"title,omitempty" jsonschema:"new title"`
	Content *string  `json:"content,omitempty" jsonschema:"new content"`
	Tags    []string `json:"tags,omitempty" jsonschema:"replacement tags"`
}

type DeleteJournalEntryParams struct {
	ID string `json:"id" jsonschema:"entry id"`
}

type GetJournalEntryParams struct {
	ID   string `json:"id,omitempty" jsonschema:"entry id"`
	Date string `json:"date,omitempty" jsonschema:"YYYY-MM-DD; used when id is omitted, defaults to today"`
}

type ListJournalEntriesParams struct {
	Start string `json:"start,omitempty" jsonschema:"first date of an inclusive range, YYYY-MM-DD"`
	End   string `json:"end,omitempty" jsonschema:"last date of an inclusive range, YYYY-MM-DD"`
	Query string `json:"query,omitempty" jsonschema:"case-insensitive text to find in title or content"`
}

type WeeklySummaryParams struct {
	Date string `json:"date,omitempty" jsonschema:"any day of the week to summarize, YYYY-MM-DD; omit for this week"`
}

// HabitStatusResponse is a habit with today's flag and its streaks.
type HabitStatusResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	Completed     bool   `json:"completed"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

type HabitListResponse struct {
	Today  string                `json:"today"`
	Habits []HabitStatusResponse `json:"habits"`
}

type DayLogResponse struct {
	Date   string          `json:"date"`
	Found  bool            `json:"found"`
	Habits map[string]bool `json:"habits"`
}

type EntryResponse struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	WordCount int      `json:"word_count"`
}

type GetEntryResponse struct {
	Found bool           `json:"found"`
	Entry *EntryResponse `json:"entry,omitempty"`
}

type DeleteEntryResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

type DaySummaryResponse struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	HasEntry  bool   `json:"has_entry"`
}

type WeeklySummaryResponse struct {
	WeekStart            string               `json:"week_start"`
	WeekEnd              string               `json:"week_end"`
	DaysCompleted        int                  `json:"days_completed"`
	DaysMissed           int                  `json:"days_missed"`
	CompletionRate       float64              `json:"completion_rate"`
	TotalCompletedHabits int                  `json:"total_completed_habits"`
	AverageWordCount     int                  `json:"average_word_count"`
	Days                 []DaySummaryResponse `json:"days"`
}

func habitStatusResponse(st habit.HabitStatus) HabitStatusResponse {
	return HabitStatusResponse{
		ID:            string(st.ID),
		Name:          st.Name,
		Description:   st.Description,
		Icon:          string(st.Icon),
		Completed:     st.Completed,
		CurrentStreak: st.CurrentStreak,
		LongestStreak: st.LongestStreak,
	}
}

func entryResponse(e journal.Entry) EntryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryResponse{
		ID:        e.ID,
		Date:      e.Date.String(),
		Title:     e.Title,
		Content:   e.Content,
		Tags:      tags,
		WordCount: e.WordCount(),
	}
}

func entryListResponse(entries []journal.Entry) EntryListResponse {
	resp := EntryListResponse{Entries: make([]EntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, entryResponse(e))
	}
	return resp
}

func weeklySummaryResponse(s stats.WeeklySummary) WeeklySummaryResponse {
	days := make([]DaySummaryResponse, 0, calendar.DaysPerWeek)
	for _, d := range s.Days {
		days = append(days, DaySummaryResponse{Date: d.Date.String(), Completed: d.Completed, HasEntry: d.HasEntry})
	}
	return WeeklySummaryResponse{
		WeekStart:            s.WeekStart.String(),
		WeekEnd:              s.WeekEnd.String(),
		DaysCompleted:        s.DaysCompleted,
		DaysMissed:           s.DaysMissed,
		CompletionRate:       s.CompletionRate,
		TotalCompletedHabits: s.TotalCompletedHabits,
		AverageWordCount:     s.AverageWordCount,
		Days:                 days,
	}
}
