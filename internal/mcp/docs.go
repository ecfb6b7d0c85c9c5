package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `rhythm tracks a small daily routine of habits plus a one-entry-per-day journal.

Core concepts:
- Habit: one of prayer, bible, journal, quiet. The catalog is fixed.
- Day log: the completion flags recorded for one calendar day (YYYY-MM-DD, user's timezone).
- Streak: current = consecutive completed days ending at the most recent logged day; longest = best run ever.
- Journal entry: free text for one day. Saving onto a day that has an entry replaces it and keeps its id.

Default workflow:
1) Orient: call list_habits (today's flags and streaks).
2) Record: toggle_habit for today; backfill_habit for a missed earlier day.
3) Reflect: save_journal_entry (date defaults to today); update_journal_entry / delete_journal_entry by id.
4) Review: weekly_summary, list_journal_entries, get_day_log.

Docs:
- rhythm://docs/index
- rhythm://docs/streaks
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "rhythm://docs/index",
		Name:        "docs_index",
		Title:       "rhythm docs index",
		Description: "Tools at a glance and the errors they return.",
		Content: `# rhythm: Tools

## Habits

- ` + "`list_habits`" + ` returns every habit with ` + "`completed`" + ` (today), ` + "`current_streak`" + ` and ` + "`longest_streak`" + `.
- ` + "`toggle_habit`" + ` flips today's flag.
- ` + "`backfill_habit`" + ` sets a flag on any day up to today.
- ` + "`reset_today`" + ` clears today's log.
- ` + "`get_day_log`" + ` shows the raw flags for one day.

## Journal

- ` + "`save_journal_entry`" + ` upserts the entry for a day. A blank title becomes "Untitled Entry"; a title or content is required.
- ` + "`update_journal_entry`" + ` changes only the fields you pass. Moving an entry onto a day that already has one fails with DUPLICATE_DATE.
- ` + "`delete_journal_entry`" + `, ` + "`get_journal_entry`" + `, ` + "`list_journal_entries`" + `.

## Stats

- ` + "`weekly_summary`" + ` covers Sunday through Saturday. A day counts as completed when at least one habit was done.

## Error codes

HABIT_NOT_FOUND, FUTURE_DATE, INVALID_DATE, ENTRY_NOT_FOUND, DUPLICATE_DATE, INVALID_INPUT, INVALID_ARGUMENTS.
`,
	},
	{
		URI:         "rhythm://docs/streaks",
		Name:        "docs_streaks",
		Title:       "How streaks are counted",
		Description: "Current and longest streak rules, including backfill behavior.",
		Content: `# Streaks

Streaks are recomputed from the full day-log history after every change.

## Current streak

Start at the most recent day that has a log. If the habit is not done that day the streak is 0.
Otherwise count back one day at a time while each earlier day is logged and done.
Days before today that have no log at all do not break the streak until a newer day is logged.

## Longest streak

Walk the history oldest to newest. A done day directly after another done day extends the run;
a gap of more than one day starts a new run; a logged day where the habit is not done ends it.

## Backfill

Backfilling a day that sits right next to an existing run joins them. Backfilling a day
separated by a gap starts its own run and never merges across the gap.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
