package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithBuildID(ctx, "build-1")
	ctx = WithStage(ctx, "prepare")
	ctx = WithConfigPath(ctx, "docsexport.yaml")

	lc := GetContext(ctx)
	require.Equal(t, "build-1", lc.BuildID)
	require.Equal(t, "prepare", lc.Stage)
	require.Equal(t, "docsexport.yaml", lc.ConfigPath)
}

func TestStageOverride(t *testing.T) {
	ctx := WithStage(context.Background(), "prepare")
	ctx = WithStage(ctx, "verify")
	require.Equal(t, "verify", GetContext(ctx).Stage)
}

func TestInfoContextIncludesContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(NewLogger(&buf, "json", slog.LevelDebug))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithStage(WithBuildID(context.Background(), "b-42"), "run_hugo")
	InfoContext(ctx, "rendering", slog.String("extra", "x"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "rendering", entry["msg"])
	require.Equal(t, "b-42", entry["build_id"])
	require.Equal(t, "run_hugo", entry["stage"])
	require.Equal(t, "x", entry["extra"])
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(NewLogger(&buf, "text", slog.LevelInfo))
	t.Cleanup(func() { slog.SetDefault(prev) })

	DebugContext(context.Background(), "hidden")
	require.Empty(t, buf.String())

	WarnContext(context.Background(), "shown")
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "msg=shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}
