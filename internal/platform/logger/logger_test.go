// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/scry-flashcards/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	tests := []struct {
		level        string
		debugVisible bool
		infoVisible  bool
	}{
		{level: "debug", debugVisible: true, infoVisible: true},
		{level: "info", debugVisible: false, infoVisible: true},
		{level: "WARN", debugVisible: false, infoVisible: false},
		{level: "error", debugVisible: false, infoVisible: false},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := logger.Setup(logger.LoggerConfig{Level: tc.level, Output: &buf})
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")

			assert.Equal(t, tc.debugVisible, strings.Contains(buf.String(), "debug message"))
			assert.Equal(t, tc.infoVisible, strings.Contains(buf.String(), "info message"))
		})
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	l, err := logger.Setup(logger.LoggerConfig{Level: "chatty", Output: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown")

	output := buf.String()
	assert.Contains(t, output, "invalid log level configured")
	assert.Contains(t, output, "shown")
	assert.NotContains(t, output, "hidden")
}

func TestSetupWritesJSONAndSetsDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	_, err := logger.Setup(logger.LoggerConfig{Level: "info", Output: &buf})
	require.NoError(t, err)

	slog.Info("via default", "topic", "Mitochondria")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "via default", entry["msg"])
	assert.Equal(t, "Mitochondria", entry["topic"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger := slog.Default()
	customLogger, _ := logger.GetTestLogger(t)

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "nil_context_returns_default",
			ctx:      nil,
			expected: defaultLogger,
		},
		{
			name:     "context_without_logger_returns_default",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
		{
			name:     "context_with_logger_returns_context_logger",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			expected: customLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := logger.FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Run("valid_logger", func(t *testing.T) {
		customLogger, logBuf := logger.GetTestLogger(t)
		ctx := logger.WithLogger(context.Background(), customLogger)

		logger.FromContext(ctx).Info("stage finished", "stage", "planning")

		logger.AssertLogContains(t, logBuf, "stage finished")
		logger.AssertLogField(t, logBuf, "stage", "planning")
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}
