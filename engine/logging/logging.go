package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Level is one of trace, debug, info, warn, error; anything else means info.
	Level string

	// LogsDir, when set, receives a timestamped plain-text log file.
	LogsDir string

	// GraylogAddress, when set, sends every entry to a GELF UDP endpoint (host:port).
	GraylogAddress string

	// Console is the colored console output; nil means os.Stderr, io.Discard disables it.
	Console io.Writer
}

// Logger is a configured zerolog logger plus the sinks that need closing.
type Logger struct {
	zerolog.Logger
	closers []io.Closer
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
//
// Parameters:
//   - level: the level name, case-insensitive
//
// Returns:
//   - zerolog.Level: the parsed level
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the process logger: console output, an optional file in LogsDir and an
// optional Graylog sink, combined with zerolog.MultiLevelWriter.
//
// Parameters:
//   - opts: the sink configuration
//
// Returns:
//   - *Logger: the logger; Close releases the file and Graylog sinks
//   - error: if the log file or the Graylog writer cannot be created
func New(opts Options) (*Logger, error) {
	l := &Logger{}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339},
	}

	if opts.LogsDir != "" {
		if err := os.MkdirAll(opts.LogsDir, 0o755); err != nil {
			return nil, fmt.Errorf("create logs dir: %w", err)
		}
		name := filepath.Join(opts.LogsDir, fmt.Sprintf("oxy-backdrop.%s.log", time.Now().UTC().Format("20060102T150405")))
		file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.closers = append(l.closers, file)
		writers = append(writers, zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true})
	}

	if opts.GraylogAddress != "" {
		gw, err := gelf.NewWriter(opts.GraylogAddress)
		if err != nil {
			l.Close()
			return nil, fmt.Errorf("graylog writer: %w", err)
		}
		gw.Facility = "oxy-backdrop"
		l.closers = append(l.closers, gw)
		writers = append(writers, gw)
	}

	l.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(opts.Level)).
		With().Timestamp().Logger()
	return l, nil
}

// Close releases the file and Graylog sinks. Safe to call more than once.
func (l *Logger) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}
