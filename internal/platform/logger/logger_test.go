package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_Development uses the text formatter at debug level.
func TestNew_Development(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithOutput("health-backend", "development", &buf)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Contains(t, buf.String(), "logger initialized")
}

// TestNew_Production uses JSON at info level.
func TestNew_Production(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithOutput("health-backend", "production", &buf)
	log.Debug("hidden")

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "health-backend", entry["app"])
	assert.Equal(t, "production", entry["env"])
}
