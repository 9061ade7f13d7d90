// Package logging builds the process logger.
//
// Entries are JSON lines with ts, level and message keys, written to the
// configured log file. The TUI owns the terminal, so nothing is written to
// stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "BLOOM_LOG_LEVEL"

// Options configure New.
type Options struct {
	// Path is the log file; empty discards output.
	Path string
	// Level is a logrus level name; empty means info.
	Level string
	// Output, when set, replaces the file. Used by tests.
	Output io.Writer
}

// New returns a logger and a function that closes its file.
func New(opts Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(Formatter())

	level, err := ResolveLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(level)

	closer := func() error { return nil }
	switch {
	case opts.Output != nil:
		logger.SetOutput(opts.Output)
	case strings.TrimSpace(opts.Path) == "":
		logger.SetOutput(io.Discard)
	default:
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		closer = f.Close
	}
	return logger, closer, nil
}

// Formatter returns the JSON formatter shared by every bloom logger.
func Formatter() *logrus.JSONFormatter {
	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	}
}

// ResolveLevel picks the level from BLOOM_LOG_LEVEL, then configured.
func ResolveLevel(configured string) (logrus.Level, error) {
	name := strings.TrimSpace(os.Getenv(EnvLevel))
	if name == "" {
		name = strings.TrimSpace(configured)
	}
	if name == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}
