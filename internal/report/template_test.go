package report

import (
	"errors"
	"testing"
)

func TestTemplateMatch(t *testing.T) {
	t.Run("ringbuffer id", func(t *testing.T) {
		tmpl := MustTemplate("  - id: {d}")
		var id int
		if err := tmpl.Match("  - id: 3", &id); err != nil {
			t.Fatalf("Match() error = %v", err)
		}
		if id != 3 {
			t.Errorf("id = %d, want 3", id)
		}
	})

	t.Run("iova hex64", func(t *testing.T) {
		tmpl := MustTemplate("    iova: {x64}")
		var iova uint64
		if err := tmpl.Match("    iova: fd00000000", &iova); err != nil {
			t.Fatalf("Match() error = %v", err)
		}
		if iova != 0xfd00000000 {
			t.Errorf("iova = %#x, want 0xfd00000000", iova)
		}
	})

	t.Run("register pair", func(t *testing.T) {
		tmpl := MustTemplate("  - { offset: {x}, value: {x} }")
		var offset, value uint32
		if err := tmpl.Match("  - { offset: 0x2000, value: deadbeef }", &offset, &value); err != nil {
			t.Fatalf("Match() error = %v", err)
		}
		if offset != 0x2000 || value != 0xdeadbeef {
			t.Errorf("offset, value = %#x, %#x", offset, value)
		}
	})

	t.Run("string token", func(t *testing.T) {
		tmpl := MustTemplate("  - regs-name: {s}")
		var name string
		if err := tmpl.Match("  - regs-name: CP_SEQ_STAT", &name); err != nil {
			t.Fatalf("Match() error = %v", err)
		}
		if name != "CP_SEQ_STAT" {
			t.Errorf("name = %q", name)
		}
	})
}

func TestTemplateMismatch(t *testing.T) {
	tmpl := MustTemplate("  - { offset: {x}, value: {x} }")

	tests := []struct {
		name string
		line string
	}{
		{"wrong literal", "  - [ offset: 0, value: 0 ]"},
		{"missing field", "  - { offset: 0x2000 }"},
		{"garbage field", "  - { offset: zz, value: 1 }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a, b uint32
			err := tmpl.Match(tt.line, &a, &b)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Match(%q) error = %v, want *ParseError", tt.line, err)
			}
			if perr.Template != tmpl.Pattern() {
				t.Errorf("ParseError.Template = %q, want %q", perr.Template, tmpl.Pattern())
			}
		})
	}
}

func TestParseErrorNamesTemplate(t *testing.T) {
	err := &ParseError{Template: "  - id: {d}"}
	want := "parse error scanning: '  - id: {d}'"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
