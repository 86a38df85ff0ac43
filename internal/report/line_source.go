// Package report implements the line-oriented input layer for GPU
// crash-dump reports: a buffered line source with one line of pushback,
// the indentation-based section scanner, declarative line templates and
// the ascii85 payload codec.
package report

import (
	"bufio"
	"io"
	"strings"
)

// LineSource reads a report line by line. It supports exactly one line
// of pushback, which is how section boundaries are handed back to the
// top-level dispatch loop.
type LineSource struct {
	r      *bufio.Reader
	last   string
	pushed bool
	valid  bool
	eof    bool
}

// NewLineSource wraps r in a LineSource.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{r: bufio.NewReader(r)}
}

// Next returns the next line with the trailing newline stripped. The
// second result is false at end of input, which is a clean stop for the
// whole pipeline, never an error.
func (s *LineSource) Next() (string, bool) {
	if s.pushed {
		s.pushed = false
		return s.last, true
	}
	if s.eof {
		return "", false
	}

	line, err := s.r.ReadString('\n')
	if err != nil {
		s.eof = true
		if len(line) == 0 {
			s.valid = false
			return "", false
		}
		// final line without a newline still counts
	}

	line = strings.TrimRight(line, "\r\n")
	s.last = line
	s.valid = true
	return line, true
}

// Pushback arranges for the most recently read line to be returned by
// the next call to Next. At most one line may be pushed back before the
// next read.
func (s *LineSource) Pushback() {
	if s.pushed || !s.valid {
		panic("report: Pushback without a line to push")
	}
	s.pushed = true
}

// ScanSection yields every body line of the current section to fn. A
// line with no leading space is not part of the section: it is pushed
// back, unconsumed, and iteration stops. End of input also stops the
// scan. If fn returns an error the scan aborts with that error.
func ScanSection(src *LineSource, fn func(line string) error) error {
	for {
		line, ok := src.Next()
		if !ok {
			return nil
		}
		if len(line) == 0 || line[0] != ' ' {
			src.Pushback()
			return nil
		}
		if err := fn(line); err != nil {
			return err
		}
	}
}
