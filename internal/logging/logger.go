package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	logDirMode  = 0o700
	logFileMode = 0o600
)

// Config selects the level, encoding and sinks of the process logger.
type Config struct {
	Level  string
	Format string
	// File, when set, receives every entry in append mode in addition to Stderr.
	File string
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// New builds the process-wide logger. It never writes to stdout so command
// output stays machine readable.
func New(cfg Config) (*logrus.Logger, error) {
	logger := logrus.New()

	levelStr := strings.TrimSpace(cfg.Level)
	if levelStr == "" {
		levelStr = "warn"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatText:
		logger.SetFormatter(&TextFormatter{Color: isTerminal(stderr)})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	writers := []io.Writer{stderr}
	if cfg.File != "" {
		file, err := openLogFile(cfg.File)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}

	if len(writers) == 1 {
		logger.SetOutput(writers[0])
	} else {
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger, nil
}

// Component returns an entry tagged with the component field.
func Component(logger logrus.FieldLogger, name string) *logrus.Entry {
	if logger == nil {
		return Discard().WithField("component", name)
	}
	return logger.WithField("component", name)
}

// Discard returns a logger that drops everything. Used as the default for
// adapters constructed without a logger.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), logDirMode); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return file, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
