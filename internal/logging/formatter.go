package logging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

var levelStyles = map[logrus.Level]lipgloss.Style{
	logrus.PanicLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	logrus.FatalLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	logrus.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	logrus.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	logrus.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	logrus.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	logrus.TraceLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// TextFormatter renders "[LEVEL] [component] message key=value" lines.
type TextFormatter struct {
	Color            bool
	DisableTimestamp bool
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteString(" ")
	}

	levelStr := entry.Level.String()
	if levelStr == "warning" {
		levelStr = "warn"
	}
	level := "[" + strings.ToUpper(levelStr) + "]"
	if f.Color {
		if style, ok := levelStyles[entry.Level]; ok {
			level = style.Render(level)
		}
	}
	b.WriteString(level)

	if component, ok := entry.Data["component"]; ok {
		fmt.Fprintf(&b, " [%v]", component)
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%v", key, entry.Data[key])
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}
