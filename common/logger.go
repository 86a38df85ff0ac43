// Package common holds shared pieces used by both the crashdec binary
// and the decode packages.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Severity represents log message severity levels.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the diagnostics contract for the decoder. Diagnostics are
// out-of-band: they go to the error stream, never into the annotated
// report on stdout.
type Logger interface {
	Logf(severity Severity, format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// StdLogger writes diagnostics through Go's standard logger.
type StdLogger struct {
	out      *log.Logger
	minLevel Severity
}

// NewStdLogger creates a logger writing to stderr.
func NewStdLogger(minLevel Severity) *StdLogger {
	return NewStdLoggerWithWriter(os.Stderr, minLevel)
}

// NewStdLoggerWithWriter creates a logger with a custom writer.
func NewStdLoggerWithWriter(w io.Writer, minLevel Severity) *StdLogger {
	return &StdLogger{
		out:      log.New(w, "crashdec: ", 0),
		minLevel: minLevel,
	}
}

func (l *StdLogger) Logf(severity Severity, format string, args ...interface{}) {
	if severity < l.minLevel {
		return
	}
	l.out.Printf("%s: %s", severity, fmt.Sprintf(format, args...))
}

func (l *StdLogger) Warningf(format string, args ...interface{}) {
	l.Logf(SeverityWarning, format, args...)
}

func (l *StdLogger) Errorf(format string, args ...interface{}) {
	l.Logf(SeverityError, format, args...)
}

// NoOpLogger discards all diagnostics.
type NoOpLogger struct{}

func (NoOpLogger) Logf(Severity, string, ...interface{})  {}
func (NoOpLogger) Warningf(string, ...interface{})        {}
func (NoOpLogger) Errorf(string, ...interface{})          {}
