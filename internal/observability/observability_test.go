// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggingConfig(t *testing.T) {
	cfg := DefaultLoggingConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggingConfig{Level: "info", Format: "json", Writer: &buf})

	logger.Debug().Msg("hidden")
	logger.Warn().Str("key", "colour").Msg("ignoring unknown configuration key")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "colour", entry["key"])
	assert.Equal(t, "ignoring unknown configuration key", entry["message"])
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggingConfig{Level: "debug", Format: "console", Writer: &buf})
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.ObserveResolution("doi", "ok")
	m.ObserveResolution("doi", "ok")
	m.ObserveResolution("arxiv", "error")
	m.ObserveRequest("api.crossref.org", 200, 150*time.Millisecond)
	m.ObserveRequest("api.crossref.org", 404, 50*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("doi", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("arxiv", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("api.crossref.org", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.UpstreamDuration))
}

func TestMetricsWriteFile(t *testing.T) {
	m := NewMetrics()
	m.ObserveResolution("bibcode", "ok")

	path := filepath.Join(t.TempDir(), "d2b.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `d2b_resolutions_total{kind="bibcode",outcome="ok"} 1`)
}
