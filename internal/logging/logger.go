// Package logging provides the structured logger used for diagnostics.
// Measurement output never goes through it.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Format selects the log encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want text or json)", s)
	}
}

// Logger wraps slog.Logger with benchmark-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to w. A nil w writes to stderr.
func New(w io.Writer, format Format, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithRun tags every record with the run ID.
func (l *Logger) WithRun(id string) *Logger {
	return &Logger{Logger: l.Logger.With("run", id)}
}

// LogResidencyHint reports an eviction the kernel did not fully honor.
func (l *Logger) LogResidencyHint(phase string, err error) {
	l.Warn("eviction not honored, cold samples may include resident pages",
		"phase", phase,
		"error", err,
	)
}

// LogPhase records the end of a measurement phase.
func (l *Logger) LogPhase(phase string, repeats int, elapsed time.Duration, minorFaults int64) {
	l.Debug("phase completed",
		"phase", phase,
		"repeats", repeats,
		"elapsed", elapsed,
		"minor_faults", minorFaults,
	)
}
