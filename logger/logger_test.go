package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil

			err := Initialize(tt.jsonOutput, VerbosityInfo)
			require.NoError(t, err)
			require.NotNil(t, Logger)

			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestInitializeWithSinkJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithSink(zapcore.AddSync(&buf), true, zapcore.InfoLevel))
	defer func() { Logger = zap.NewNop().Sugar() }()

	Infow("tool call", FieldTool, "get_pr_diff", FieldPullNumber, 42)
	Debugw("suppressed below info")
	Cleanup()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "tool call", entry["msg"])
	assert.Equal(t, "get_pr_diff", entry[FieldTool])
	assert.Equal(t, float64(42), entry[FieldPullNumber])
	assert.Contains(t, entry, "time")
}

func TestInitializeWithSinkConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithSink(zapcore.AddSync(&buf), false, zapcore.WarnLevel))
	defer func() { Logger = zap.NewNop().Sugar() }()

	Infow("hidden at warn level")
	Warnw("upstream slow", FieldDurationMS, 1200)

	out := buf.String()
	assert.NotContains(t, out, "hidden at warn level")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "upstream slow")
	assert.Contains(t, out, `"duration_ms": 1200`)
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(LevelName(tt.verbosity), func(t *testing.T) {
			assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity))
		})
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Trace (-vvv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-2))
	assert.True(t, ShouldLogTrace(3))
	assert.False(t, ShouldLogTrace(2))
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core).Sugar()

	ctx := WithRequestID(context.Background(), "req-123")

	LoggerFromContext(ctx, base).Infow("handled")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-123", fields[FieldRequestID])
	assert.Len(t, fields, 1)
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
}

func TestLoggerFromContextWithoutFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core).Sugar()

	got := LoggerFromContext(context.Background(), base)
	assert.Same(t, base, got)

	got.Infow("plain")
	assert.Empty(t, logs.All()[0].ContextMap())
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

// TestLoggingFunctions checks package-level helpers tolerate a nil logger
func TestLoggingFunctions(t *testing.T) {
	Logger = nil
	defer func() { Logger = zap.NewNop().Sugar() }()

	Infow("test", "key", "value")
	Warnw("test", "key", "value")
	Debugw("test", "key", "value")
	Cleanup()
}
