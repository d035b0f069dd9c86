package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNew_JSONWithComponentAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Component: ComponentSeed, Output: &buf})

	ctx := WithRequestID(context.Background(), "abc-123")
	logger.InfoContext(ctx, "seeded", FieldInserted, 60)
	logger.Debug("hidden")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "seeded", lines[0]["msg"])
	assert.Equal(t, ComponentSeed, lines[0][FieldComponent])
	assert.Equal(t, "abc-123", lines[0][FieldRequestID])
	assert.EqualValues(t, 60, lines[0][FieldInserted])
}

func TestNew_TextFormatIsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf})
	logger.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "component=app")
}

func TestNew_FileOutput(t *testing.T) {
	logger := New(Config{File: filepath.Join(t.TempDir(), "app.log"), MaxSizeMB: 1})
	logger.Info("written to file")
}

func TestStructuredLogger_LevelsByStatus(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Level: "debug", Format: "json", Output: &buf}))
	r := httptest.NewRequest("GET", "/api/statistics?month=03", nil)

	sl.LogHTTPEnd(context.Background(), r, 200, 3, "3ms", "127.0.0.1")
	sl.LogHTTPEnd(context.Background(), r, 405, 1, "1ms", "127.0.0.1")
	sl.LogHTTPEnd(context.Background(), r, 500, 1, "1ms", "127.0.0.1")
	sl.LogError(context.Background(), "query failed", errors.New("boom"), OpStatistics, NewFields().WithMonth("03"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "WARN", lines[1]["level"])
	assert.Equal(t, "ERROR", lines[2]["level"])
	assert.Equal(t, "month=03", lines[0][FieldQuery])
	assert.Equal(t, ComponentHTTP, lines[0][FieldComponent])
	assert.Equal(t, "boom", lines[3][FieldError])
	assert.Equal(t, OpStatistics, lines[3][FieldOperation])
}

func TestRequestID_Missing(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
}

func TestDefault_ComponentAttributeOnce(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(New(Config{Format: "json", Output: &buf}))
	logger := Default(ComponentStorage)
	logger.Info("stored")

	assert.Equal(t, ComponentStorage, logger.Component())
	assert.Equal(t, 1, strings.Count(buf.String(), `"component"`))
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, ComponentStorage, lines[0][FieldComponent])
}

func TestFromContext(t *testing.T) {
	logger := New(Config{Component: ComponentHTTP, Output: &bytes.Buffer{}})

	var got *Logger
	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Same(t, logger, got)
	assert.Equal(t, "unknown", FromContext(context.Background()).Component())
}
