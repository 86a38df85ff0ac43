// Package regdb provides the symbolic register databases consulted when
// rendering register sections and when the reconstruction engine needs
// a register offset by name. Databases are built-in per GPU family;
// offsets are dword indices into the register file.
package regdb

import (
	"fmt"
	"strings"
)

// Field describes one bitfield of a register, bits Lo..Hi inclusive.
type Field struct {
	Name   string
	Lo, Hi uint8
	Enum   map[uint32]string
}

// RegInfo describes one register: its symbolic name and optional
// bitfield breakdown.
type RegInfo struct {
	Name   string
	Fields []Field
}

// Database maps register offsets to symbolic information for one
// address space (GPU registers of a family, or the GMU coprocessor).
type Database struct {
	name   string
	regs   map[uint32]*RegInfo
	byName map[string]uint32
}

func newDatabase(name string, regs map[uint32]*RegInfo) *Database {
	db := &Database{
		name:   name,
		regs:   regs,
		byName: make(map[string]uint32, len(regs)),
	}
	for off, info := range regs {
		db.byName[info.Name] = off
	}
	return db
}

// Name returns the database's domain name, e.g. "A6XX".
func (d *Database) Name() string { return d.name }

// Lookup returns the register info at offset, or nil if the offset has
// no symbolic name in this database.
func (d *Database) Lookup(offset uint32) *RegInfo {
	return d.regs[offset]
}

// Offset maps a register name back to its dword offset.
func (d *Database) Offset(name string) (uint32, bool) {
	off, ok := d.byName[name]
	return off, ok
}

// Decode renders value for the register at offset: the symbolic name
// plus a bitfield breakdown when the database has one. ok is false when
// the offset is unknown.
func (d *Database) Decode(offset, value uint32) (name, text string, ok bool) {
	info := d.regs[offset]
	if info == nil {
		return "", "", false
	}
	if len(info.Fields) == 0 {
		return info.Name, fmt.Sprintf("%08x", value), true
	}

	var sb strings.Builder
	sb.WriteString("{ ")
	for i, f := range info.Fields {
		if i > 0 {
			sb.WriteString(" | ")
		}
		v := (value >> f.Lo) & fieldMask(f)
		if s, ok := f.Enum[v]; ok {
			fmt.Fprintf(&sb, "%s = %s", f.Name, s)
		} else {
			fmt.Fprintf(&sb, "%s = %#x", f.Name, v)
		}
	}
	sb.WriteString(" }")
	return info.Name, sb.String(), true
}

func fieldMask(f Field) uint32 {
	width := f.Hi - f.Lo + 1
	if width >= 32 {
		return ^uint32(0)
	}
	return (1 << width) - 1
}

// ForGPU selects the register database for a gpu id as reported by the
// revision line (e.g. 630 for a630).
func ForGPU(gpuID uint32) *Database {
	switch {
	case gpuID >= 600:
		return a6xxDB
	case gpuID >= 500:
		return a5xxDB
	default:
		return axxxDB
	}
}

// GMU returns the coprocessor register database for families that carry
// one, or nil. The GMU address space is disjoint from the GPU's.
func GMU(gpuID uint32) *Database {
	if gpuID >= 600 && gpuID < 700 {
		return a6xxGmuDB
	}
	return nil
}
