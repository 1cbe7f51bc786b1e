package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "warn", Format: "console", Writer: &buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "WARN")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Format: "json", Writer: &buf})
	require.NoError(t, err)

	log.Debug("hello")
	require.NoError(t, log.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_InvalidLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "loud", Writer: &buf})
	require.NoError(t, err)

	log.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ydownloader.log")
	log, err := New(Config{Level: "info", Format: "json", OutputPath: path})
	require.NoError(t, err)

	log.Info("to file")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		verbose    bool
		quiet      bool
		expected   string
	}{
		{"default", "", false, false, "warn"},
		{"configured", "info", false, false, "info"},
		{"verbose", "info", true, false, "debug"},
		{"quiet", "info", false, true, "error"},
		{"verbose wins", "", true, true, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevelFor(tt.configured, tt.verbose, tt.quiet))
		})
	}
}
