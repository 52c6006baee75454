package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Options configure a Logger.
type Options struct {
	Level  string // debug, info, warn, error (default info)
	Format string // text or json (default text)
	File   string // optional log file; stderr when empty
}

// Logger wraps a logrus logger plus the file it may own.
type Logger struct {
	entry *logrus.Logger
	file  *os.File
}

// New creates a logger from the given options.
func New(opts Options) (*Logger, error) {
	l := logrus.New()

	level := opts.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l.SetLevel(parsed)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	default:
		return nil, fmt.Errorf("unsupported log format: %q", opts.Format)
	}

	var file *os.File
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.SetOutput(file)
	} else {
		l.SetOutput(os.Stderr)
	}

	return &Logger{entry: l, file: file}, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{entry: l}
}

// Close releases the log file if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
func (l *Logger) Fatalf(format string, args ...any) { l.entry.Fatalf(format, args...) }

// WithField returns an entry carrying one structured field.
func (l *Logger) WithField(key string, value any) *logrus.Entry {
	return l.entry.WithField(key, value)
}

// WithFields returns an entry carrying several structured fields.
func (l *Logger) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.entry.WithFields(fields)
}

// WithError returns an entry carrying an error field.
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.entry.WithError(err)
}
