package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/ignis-sh/ignis/tui/theme"
)

// levelTags are fixed-width so entries line up in a column regardless of
// level.
var levelTags = map[logrus.Level]string{
	logrus.TraceLevel: "TRACE",
	logrus.DebugLevel: "DEBUG",
	logrus.InfoLevel:  "INFO ",
	logrus.WarnLevel:  "WARN ",
	logrus.ErrorLevel: "ERROR",
	logrus.FatalLevel: "FATAL",
	logrus.PanicLevel: "PANIC",
}

func levelStyle(level logrus.Level) lipgloss.Style {
	t := theme.DefaultTheme
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return t.Error
	case logrus.WarnLevel:
		return t.Warning
	case logrus.InfoLevel:
		return t.Info
	default:
		return t.Muted
	}
}

// TextFormatter renders entries as
//
//	15:04:05 WARN  [hyprland] workspace resync failed topic=workspaces
//
// with the level and component styled via the shared theme. The file sink's
// name already carries the date, so the timestamp is time-of-day only.
type TextFormatter struct {
	Config FormatConfig
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	t := theme.DefaultTheme
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString(t.Muted.Render(entry.Time.Format("15:04:05")))
		b.WriteString(" ")
	}

	tag, ok := levelTags[entry.Level]
	if !ok {
		tag = strings.ToUpper(entry.Level.String())
	}
	b.WriteString(levelStyle(entry.Level).Render(tag))

	if component, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		b.WriteString(" " + t.Accent.Render(fmt.Sprintf("[%v]", component)))
	}

	if entry.HasCaller() {
		b.WriteString(fmt.Sprintf(" %s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line))
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	// Fields in sorted order so repeated entries diff cleanly
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString(" " + t.Muted.Render(key+"=") + fmt.Sprintf("%v", entry.Data[key]))
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}
