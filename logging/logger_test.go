package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerReturnsSameEntryPerComponent(t *testing.T) {
	a := NewLogger("test-component")
	b := NewLogger("test-component")
	assert.Same(t, a, b)

	c := NewLogger("other-component")
	assert.NotSame(t, a, c)
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.WarnLevel,
		Message: "resync failed",
		Data:    logrus.Fields{"component": "hyprland", "topic": "workspaces"},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "WARN")
	assert.Contains(t, string(out), "[hyprland]")
	assert.Contains(t, string(out), "resync failed")
	assert.Contains(t, string(out), "topic=")
	assert.Contains(t, string(out), "workspaces")
	assert.NotContains(t, string(out), "warning")
}

func TestTextFormatterSortsFields(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.InfoLevel,
		Message: "started",
		Data:    logrus.Fields{"socket": "/run/x.sock", "backend": "niri"},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	// Map iteration order must not leak into the output
	assert.Less(t, bytes.Index(out, []byte("backend=")), bytes.Index(out, []byte("socket=")))
}

func TestTextFormatterTimestamp(t *testing.T) {
	f := &TextFormatter{}

	ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    ts,
		Level:   logrus.InfoLevel,
		Message: "listening",
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "12:30:00")
	assert.NotContains(t, string(out), "2025-06-01")
}
