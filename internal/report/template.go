package report

import (
	"fmt"
	"strconv"
	"strings"
)

// A Template matches one fixed body-line shape: literal segments
// interleaved with typed field slots. Slots are written in the pattern
// as {x} (32-bit hex), {x64} (64-bit hex), {u} (decimal uint32),
// {d} (decimal int) and {s} (non-space token).
type Template struct {
	raw   string
	parts []part
}

type part struct {
	lit  string
	slot slotKind
}

type slotKind int

const (
	slotNone slotKind = iota
	slotHex
	slotHex64
	slotUint
	slotInt
	slotString
)

// MustTemplate compiles pattern. Templates are package-level constants
// of the section handlers; a brace sequence that is not a known slot
// marker is matched as literal text.
func MustTemplate(pattern string) *Template {
	t := &Template{raw: pattern}
	rest := pattern
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			t.parts = append(t.parts, part{lit: rest})
			break
		}
		if open > 0 {
			t.parts = append(t.parts, part{lit: rest[:open]})
		}
		rest = rest[open:]
		kind, width := slotAt(rest)
		if kind == slotNone {
			// a literal brace, as in the yaml flow-mapping lines
			t.parts = append(t.parts, part{lit: "{"})
			rest = rest[1:]
			continue
		}
		t.parts = append(t.parts, part{slot: kind})
		rest = rest[width:]
	}
	return t
}

// slotAt recognizes a slot marker at the start of s (which begins with
// '{') and returns its kind and marker length.
func slotAt(s string) (slotKind, int) {
	switch {
	case strings.HasPrefix(s, "{x64}"):
		return slotHex64, 5
	case strings.HasPrefix(s, "{x}"):
		return slotHex, 3
	case strings.HasPrefix(s, "{u}"):
		return slotUint, 3
	case strings.HasPrefix(s, "{d}"):
		return slotInt, 3
	case strings.HasPrefix(s, "{s}"):
		return slotString, 3
	}
	return slotNone, 0
}

// Pattern returns the source pattern, used in parse diagnostics.
func (t *Template) Pattern() string { return t.raw }

// ParseError reports a body line that did not match its section's
// expected template. It is fatal for the whole decode: the grammar is
// assumed well-formed for a valid report.
type ParseError struct {
	Template string
	Line     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error scanning: '%s'", e.Template)
}

// Match extracts the template's fields from line into out. Each out
// element must be a pointer matching the slot kind in order: *uint32
// for {x} and {u}, *uint64 for {x64}, *int for {d}, *string for {s}.
// A shape mismatch between line and template returns a *ParseError.
func (t *Template) Match(line string, out ...any) error {
	rest := line
	n := 0
	for _, p := range t.parts {
		if p.slot == slotNone {
			if !strings.HasPrefix(rest, p.lit) {
				return &ParseError{Template: t.raw, Line: line}
			}
			rest = rest[len(p.lit):]
			continue
		}
		if n >= len(out) {
			return fmt.Errorf("report: too few outputs for template %q", t.raw)
		}
		tok, remain := splitToken(rest)
		if tok == "" {
			return &ParseError{Template: t.raw, Line: line}
		}
		if err := storeSlot(p.slot, tok, out[n]); err != nil {
			return &ParseError{Template: t.raw, Line: line}
		}
		rest = remain
		n++
	}
	if n != len(out) {
		return fmt.Errorf("report: too many outputs for template %q", t.raw)
	}
	return nil
}

// splitToken takes the next run of characters up to a space, comma or
// closing brace, which is where every field in the report grammar ends.
func splitToken(s string) (string, string) {
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != ',' && s[i] != '}' {
		i++
	}
	return s[:i], s[i:]
}

func storeSlot(kind slotKind, tok string, out any) error {
	switch kind {
	case slotHex:
		v, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 32)
		if err != nil {
			return err
		}
		p, ok := out.(*uint32)
		if !ok {
			return fmt.Errorf("report: {x} slot needs *uint32, got %T", out)
		}
		*p = uint32(v)
	case slotHex64:
		v, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 64)
		if err != nil {
			return err
		}
		p, ok := out.(*uint64)
		if !ok {
			return fmt.Errorf("report: {x64} slot needs *uint64, got %T", out)
		}
		*p = v
	case slotUint:
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return err
		}
		p, ok := out.(*uint32)
		if !ok {
			return fmt.Errorf("report: {u} slot needs *uint32, got %T", out)
		}
		*p = uint32(v)
	case slotInt:
		v, err := strconv.Atoi(tok)
		if err != nil {
			return err
		}
		p, ok := out.(*int)
		if !ok {
			return fmt.Errorf("report: {d} slot needs *int, got %T", out)
		}
		*p = v
	case slotString:
		p, ok := out.(*string)
		if !ok {
			return fmt.Errorf("report: {s} slot needs *string, got %T", out)
		}
		*p = tok
	}
	return nil
}
