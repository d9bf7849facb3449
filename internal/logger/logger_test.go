package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromString("DEBUG"))
	assert.Equal(t, slog.LevelWarn, LevelFromString("warning"))
	assert.Equal(t, slog.LevelError, LevelFromString("error"))
	assert.Equal(t, slog.LevelInfo, LevelFromString("chatty"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Writer: &buf})

	log.Info("dropped")
	log.Warn("diagram placeholder", "page", "software-systems/orders/dynamic/index.html")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "diagram placeholder", rec["msg"])
	assert.Equal(t, "software-systems/orders/dynamic/index.html", rec["page"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Format: "text", Writer: &buf}).Info("generated", "pages", 3)
	assert.Contains(t, buf.String(), "msg=generated pages=3")
}
