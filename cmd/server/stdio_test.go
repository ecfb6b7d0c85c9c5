package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

const childEnv = "RHYTHM_STDIO_CHILD"

// TestMain lets the test binary double as the server process.
func TestMain(m *testing.M) {
	if os.Getenv(childEnv) == "1" {
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func startServer(t *testing.T, ctx context.Context, dbPath string) *sdkmcp.ClientSession {
	t.Helper()

	cmd := exec.CommandContext(ctx, os.Args[0])
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(),
		childEnv+"=1",
		"RHYTHM_CONFIG_PATH=",
		"RHYTHM_DB_PATH="+dbPath,
		"RHYTHM_LOG_LEVEL=debug",
		"RHYTHM_LOG_PATH=",
		"RHYTHM_TIMEZONE=UTC",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err, "failed to connect to server")
	return session
}

func TestStdio_ServesAndPersists(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	dbPath := filepath.Join(t.TempDir(), "data", "rhythm.db")

	session := startServer(t, ctx, dbPath)

	initResult := session.InitializeResult()
	require.NotNil(t, initResult)
	require.Equal(t, "rhythm", initResult.ServerInfo.Name)

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 11)

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "toggle_habit",
		Arguments: map[string]any{"habit_id": "bible"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "toggle_habit returned error: %v", result)
	require.NoError(t, session.Close())

	// A fresh process over the same database sees the completion.
	session = startServer(t, ctx, dbPath)
	defer session.Close()

	result, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "list_habits", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var list struct {
		Habits []struct {
			ID            string `json:"id"`
			Completed     bool   `json:"completed"`
			CurrentStreak int    `json:"current_streak"`
		} `json:"habits"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].(*sdkmcp.TextContent).Text), &list))

	byID := map[string]bool{}
	for _, h := range list.Habits {
		byID[h.ID] = h.Completed
	}
	require.True(t, byID["bible"])
	require.False(t, byID["prayer"])
}
