package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToWarnLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Config{Stderr: &buf})
	require.NoError(t, err)

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN] shown")
}

func TestNewRejectsUnknownLevelAndFormat(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Level: "loud"})
	require.Error(t, err)

	_, err = New(Config{Format: "xml"})
	require.ErrorContains(t, err, "unsupported log format")
}

func TestNewJSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Format: FormatJSON, Stderr: &buf})
	require.NoError(t, err)

	Component(logger, "process").WithField("pid", 42).Debug("terminated")

	assert.Contains(t, buf.String(), `"component":"process"`)
	assert.Contains(t, buf.String(), `"pid":42`)
	assert.Contains(t, buf.String(), `"msg":"terminated"`)
}

func TestNewWritesToFileSink(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "ra.log")
	var buf bytes.Buffer

	logger, err := New(Config{Level: "info", File: path, Stderr: &buf})
	require.NoError(t, err)

	logger.Info("first")
	logger.Info("second")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
	assert.Contains(t, buf.String(), "second")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(logFileMode), info.Mode().Perm())
}

func TestTextFormatterOrdersFields(t *testing.T) {
	t.Parallel()

	formatter := &TextFormatter{DisableTimestamp: true}
	out, err := formatter.Format(&logrus.Entry{
		Level:   logrus.WarnLevel,
		Message: "backup skipped",
		Data: logrus.Fields{
			"component": "switcher",
			"zeta":      1,
			"alpha":     "x",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "[WARN] [switcher] backup skipped alpha=x zeta=1\n", string(out))
}

func TestComponentWithNilLogger(t *testing.T) {
	t.Parallel()

	entry := Component(nil, "detector")
	require.NotNil(t, entry)
	assert.Equal(t, "detector", entry.Data["component"])
}
