package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level string, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l, _ := NewLogger(level, "", true)
	*l.outputs = []Output{NewConsoleOutput(&buf, format)}
	return l, &buf
}

func TestLoggerLevels(t *testing.T) {
	l, buf := newBufferLogger("warn", FormatText)
	l.Info("hidden")
	l.Warn("shown", F("k", 1))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown k=1")
}

func TestLoggerWithSharesOutputs(t *testing.T) {
	l, buf := newBufferLogger("debug", FormatText)
	scoped := l.With(F("component", "binder"))
	scoped.Debug("bound", F("entered", 3))
	assert.Contains(t, buf.String(), "bound component=binder entered=3")
}

func TestLoggerJSONFormat(t *testing.T) {
	l, buf := newBufferLogger("info", FormatJSON)
	l.Info("loaded", F("records", 10))
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"))
	assert.Contains(t, line, `"message":"loaded"`)
	assert.Contains(t, line, `"records":10`)
}

func TestNewLoggerRequiresDestination(t *testing.T) {
	_, err := NewLogger("info", "", false)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "app.log")
	l, err := NewLogger("info", path, false)
	require.NoError(t, err)
	l.Info("to file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] to file")
}

func TestGlobalHelpersAreSafeWithoutLogger(t *testing.T) {
	SetLogger(nil)
	LogInfo("nothing")
	LogDebugf("nothing %d", 1)
	ForComponent("test").Warn("nothing")
}
