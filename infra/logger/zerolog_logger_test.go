package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerLevelAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerWithWriter(&buf, "synthesis", "warn")
	l.Infof("dropped")
	l.Warnf("kept %d", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "synthesis", entry["component"])
	assert.Equal(t, "kept 7", entry["message"])
	assert.Equal(t, "warn", entry["level"])
}

func TestZerologLoggerDebugFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerWithWriter(&buf, "c", "debug")
	l.Debugw("stage", map[string]any{"steps": 525600})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, float64(525600), entry["steps"])
}

func TestZerologLoggerDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerWithWriter(&buf, "c", "bogus")
	l.Debugf("hidden")
	assert.Empty(t, buf.String())
	l.Infof("shown")
	assert.Contains(t, buf.String(), "shown")
}
