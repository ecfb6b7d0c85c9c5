package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/rhythm/internal/calendar"
	"github.com/ganot/rhythm/internal/domain/habit"
	"github.com/ganot/rhythm/internal/domain/journal"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HabitService defines habit operations needed by MCP.
type HabitService interface {
	Statuses() []habit.HabitStatus
	Toggle(ctx context.Context, id habit.HabitID) (habit.HabitStatus, error)
	Backfill(ctx context.Context, req habit.BackfillRequest) (habit.HabitStatus, error)
	ResetToday(ctx context.Context) error
	Log(date string) (habit.DailyLog, bool, error)
	Logs() []habit.DailyLog
}

// JournalService defines journal operations needed by MCP.
type JournalService interface {
	Save(ctx context.Context, req journal.SaveRequest) (journal.Entry, error)
	Update(ctx context.Context, id string, req journal.UpdateRequest) (journal.Entry, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(id string) (journal.Entry, bool)
	ByDate(date string) (journal.Entry, bool, error)
	Range(start, end string) ([]journal.Entry, error)
	Search(query string) []journal.Entry
	List() []journal.Entry
}

// Services contains all domain services needed by MCP.
type Services struct {
	Habits  HabitService
	Journal JournalService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Clock    calendar.Clock
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "rhythm",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{
		habits:  cfg.Services.Habits,
		journal: cfg.Services.Journal,
		clock:   cfg.Clock,
	})

	return server
}
