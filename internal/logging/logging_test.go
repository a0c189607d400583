package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		format   string
		expected []string
	}{
		{
			name:     "none, logfmt",
			level:    LevelNone,
			format:   FormatLogfmt,
			expected: nil,
		},
		{
			name:     "error, json",
			level:    LevelError,
			format:   FormatJSON,
			expected: []string{"error"},
		},
		{
			name:     "warn, logfmt",
			level:    LevelWarn,
			format:   FormatLogfmt,
			expected: []string{"warn", "error"},
		},
		{
			name:     "info, json",
			level:    LevelInfo,
			format:   FormatJSON,
			expected: []string{"info", "warn", "error"},
		},
		{
			name:     "debug, logfmt",
			level:    LevelDebug,
			format:   FormatLogfmt,
			expected: []string{"debug", "info", "warn", "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(buf, tt.level, tt.format)
			require.NoError(t, err)

			_ = level.Debug(logger).Log("msg", "debug")
			_ = level.Info(logger).Log("msg", "info")
			_ = level.Warn(logger).Log("msg", "warn")
			_ = level.Error(logger).Log("msg", "error")

			var lines []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if line != "" {
					lines = append(lines, line)
				}
			}
			require.Len(t, lines, len(tt.expected))
			for i, msg := range tt.expected {
				assert.Contains(t, lines[i], msg)
				assert.Contains(t, lines[i], "ts")
				assert.Contains(t, lines[i], "caller")
			}
		})
	}
}

func TestNewJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(buf, LevelInfo, FormatJSON)
	require.NoError(t, err)

	_ = level.Info(logger).Log("msg", "parsed", "rdns", 3)
	assert.Contains(t, buf.String(), `"msg":"parsed"`)
	assert.Contains(t, buf.String(), `"rdns":3`)
}

func TestNewInvalid(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "verbose", FormatLogfmt)
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, LevelInfo, "xml")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop().Log("msg", "discarded"))
}
