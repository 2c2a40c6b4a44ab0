package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newBufferLogger(buf *bytes.Buffer, level LogLevel) LoggerFactory {
	return NewLoggingBuilder().
		SetMinimumLevel(level).
		AddConsole(ConsoleLoggerOptions{Output: buf}).
		Build()
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, LogLevelInfo).CreateLogger("Test")

	logger.Info("Hello", Field{Key: "key", Value: "val"})

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "[Test]")
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "key=val")
	assert.NotContains(t, out, "\033[", "color must stay off unless requested")
}

func TestConsoleLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, LogLevelWarn).CreateLogger("Test")

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN")
	assert.Contains(t, lines[1], "ERROR")
}

func TestConsoleLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := newBufferLogger(&buf, LogLevelInfo).CreateLogger("Test")

	a := base.WithFields(Field{Key: "a", Value: 1})
	b := a.WithFields(Field{Key: "b", Value: 2})
	c := a.WithFields(Field{Key: "c", Value: 3})

	b.Info("first")
	c.Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "a=1, b=2")
	assert.NotContains(t, lines[0], "c=3")
	assert.Contains(t, lines[1], "a=1, c=3")
	assert.NotContains(t, lines[1], "b=2")
}

func TestConsoleLoggerWithCategory(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, LogLevelInfo).CreateLogger("Test").WithCategory("di")

	logger.Info("open")

	assert.Contains(t, buf.String(), "[di] open")
}

func TestFactorySetMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	factory := newBufferLogger(&buf, LogLevelInfo)
	factory.SetMinimumLevel(LogLevelDebug)

	factory.CreateLogger("Test").Debug("now visible")

	assert.Contains(t, buf.String(), "now visible")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"trace", LogLevelTrace, false},
		{"DEBUG", LogLevelDebug, false},
		{"", LogLevelInfo, false},
		{" Warn ", LogLevelWarn, false},
		{"warning", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"loud", LogLevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZapLoggerProvider(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	provider := NewZapLoggerProvider(zap.New(core))
	provider.SetMinimumLevel(LogLevelTrace)

	logger := provider.CreateLogger("di").WithFields(Field{Key: "name", Value: "memberService"})
	logger.Debug("created", Field{Key: "scope", Value: "singleton"})
	logger.Trace("mapped to debug")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "created", entries[0].Message)
	assert.Equal(t, "di", entries[0].LoggerName)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "mapped to debug", entries[1].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level, "zap has no trace level")

	ctx := entries[0].ContextMap()
	assert.Equal(t, "memberService", ctx["name"])
	assert.Equal(t, "singleton", ctx["scope"])
}

func TestWithCategoryKeepsFields(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		newBufferLogger(&buf, LogLevelInfo).CreateLogger("a").
			WithFields(Field{Key: "uuid", Value: "u1"}).
			WithCategory("b").
			Info("x", Field{Key: "k", Value: 1})

		assert.Contains(t, buf.String(), "INFO [b] x {uuid=u1, k=1}")
	})

	t.Run("zap", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		base := NewZapLoggerProvider(zap.New(core)).CreateLogger("a").
			WithFields(Field{Key: "uuid", Value: "u1"})
		base.WithCategory("b").WithFields(Field{Key: "k", Value: 1}).Info("x")
		base.WithCategory("c").Info("y")

		entries := logs.All()
		require.Len(t, entries, 2)
		assert.Equal(t, "b", entries[0].LoggerName)
		assert.Equal(t, map[string]any{"uuid": "u1", "k": int64(1)}, entries[0].ContextMap())
		assert.Equal(t, "c", entries[1].LoggerName)
		assert.Equal(t, map[string]any{"uuid": "u1"}, entries[1].ContextMap())
	})
}

func TestZapLoggerProviderLevelFilter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	provider := NewZapLoggerProvider(zap.New(core))
	provider.SetMinimumLevel(LogLevelWarn)

	logger := provider.CreateLogger("")
	logger.Info("dropped")
	logger.Warn("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.WithCategory("x").WithFields(Field{Key: "k", Value: 1}).Error("ignored")
	})
}

func BenchmarkConsoleLogging(b *testing.B) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, LogLevelInfo).CreateLogger("Bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("Benchmark", Field{Key: "i", Value: i})
		if buf.Len() > 1<<20 {
			buf.Reset()
		}
	}
}
