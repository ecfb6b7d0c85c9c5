package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	_ "time/tzdata"

	"github.com/ganot/rhythm/internal/calendar"
	"github.com/ganot/rhythm/internal/config"
	"github.com/ganot/rhythm/internal/domain/habit"
	"github.com/ganot/rhythm/internal/domain/journal"
	"github.com/ganot/rhythm/internal/mcp"
	"github.com/ganot/rhythm/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	slogmulti "github.com/samber/slog-multi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg.Log)
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Calendar.Location()
	if err != nil {
		return err
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("prepare database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		return err
	}

	kv := sqlite.NewKVRepository(db)
	clock := calendar.NewSystemClock(loc)

	catalog, err := habit.LoadCatalog(ctx, kv, logger)
	if err != nil {
		return err
	}
	logStore := habit.NewLogStore(kv, logger)
	if err := logStore.Load(ctx); err != nil {
		return err
	}
	entryStore := journal.NewStore(kv, logger)
	if err := entryStore.Load(ctx); err != nil {
		return err
	}

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Habits:  habit.NewService(logStore, catalog, clock, logger),
			Journal: journal.NewService(entryStore, clock, logger),
		},
		Clock:  clock,
		Logger: logger,
	})

	logger.Info("starting stdio transport", "db", cfg.DB.Path, "timezone", loc.String(), "today", clock.Today())

	// Run blocks until stdin closes or the context is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

// newLogger writes to stderr, since stdout carries JSON-RPC, and fans out to
// the optional log file.
func newLogger(cfg config.LogConfig) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	handlers := []slog.Handler{slog.NewTextHandler(os.Stderr, opts)}
	closeLog := func() {}

	if cfg.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			handlers = append(handlers, slog.NewTextHandler(fileWriter, opts))
			var once sync.Once
			closeLog = func() { once.Do(func() { fileWriter.Close() }) }
		}
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closeLog
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeLog
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// logFileWriter appends to a file and, once it grows past maxLogSizeBytes,
// keeps only the newest keepLogSizeBytes.
type logFileWriter struct {
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	writer := &logFileWriter{file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		file.Close()
		return nil, err
	}
	return writer, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.truncateIfNeeded()
}

func (w *logFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	n, err := w.file.ReadAt(buf, size-keepLogSizeBytes)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND places this write at the new end of file.
	_, err = w.file.Write(buf)
	return err
}
