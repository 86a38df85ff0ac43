package crashdec

import (
	"fmt"
	"strings"

	"github.com/niej/envytools/internal/hexdump"
	"github.com/niej/envytools/internal/pm4"
	"github.com/niej/envytools/internal/regdb"
	"github.com/niej/envytools/internal/report"
)

const dataPrefix = "    data: !!ascii85 |"

var (
	tmplBosIova       = report.MustTemplate("  - iova: {x64}")
	tmplBosSize       = report.MustTemplate("    size: {u}")
	tmplRbID          = report.MustTemplate("  - id: {d}")
	tmplRbIova        = report.MustTemplate("    iova: {x64}")
	tmplRbRptr        = report.MustTemplate("    rptr: {u}")
	tmplRbWptr        = report.MustTemplate("    wptr: {u}")
	tmplRbSize        = report.MustTemplate("    size: {u}")
	tmplRegPair       = report.MustTemplate("  - { offset: {x}, value: {x} }")
	tmplClusterPair   = report.MustTemplate("      - { offset: {x}, value: {x} }")
	tmplRegsName      = report.MustTemplate("  - regs-name: {s}")
	tmplDwords        = report.MustTemplate("    dwords: {u}")
	tmplShaderType    = report.MustTemplate("  - type: {s}")
	tmplShaderSize    = report.MustTemplate("      size: {u}")
	tmplDebugbusBlock = report.MustTemplate("  - debugbus-block: {s}")
	tmplDebugbusCount = report.MustTemplate("    count: {u}")
)

// echo copies one body line to the output verbatim.
func (s *Session) echo(line string) {
	fmt.Fprintln(s.out, line)
}

// decodeBos handles the buffers section: contents are registered into
// the buffer registry keyed by iova.
func (s *Session) decodeBos() error {
	var iova uint64
	var size uint32

	return report.ScanSection(s.src, func(line string) error {
		switch {
		case strings.HasPrefix(line, "  - iova:"):
			if err := tmplBosIova.Match(line, &iova); err != nil {
				return err
			}
		case strings.HasPrefix(line, "    size:"):
			if err := tmplBosSize.Match(line, &size); err != nil {
				return err
			}
		case strings.HasPrefix(line, dataPrefix):
			s.echo(line)
			buf := s.popAscii85(size / 4)
			if s.opts.Verbose {
				hexdump.Dump(s.out, buf, 1)
			}
			s.mem.Add(iova, buf)
			return nil
		}
		s.echo(line)
		return nil
	})
}

// decodeRingbuffer handles the ring-buffer section. Ring memory is also
// ordinary addressable memory, so contents go into the registry too.
func (s *Session) decodeRingbuffer() error {
	id := 0

	return report.ScanSection(s.src, func(line string) error {
		switch {
		case strings.HasPrefix(line, "  - id:"):
			if err := tmplRbID.Match(line, &id); err != nil {
				return err
			}
			if id < 0 || id >= numRings {
				return fmt.Errorf("ringbuffer id %d out of range", id)
			}
		case strings.HasPrefix(line, "    iova:"):
			if err := tmplRbIova.Match(line, &s.rings[id].iova); err != nil {
				return err
			}
		case strings.HasPrefix(line, "    rptr:"):
			if err := tmplRbRptr.Match(line, &s.rings[id].rptr); err != nil {
				return err
			}
		case strings.HasPrefix(line, "    wptr:"):
			if err := tmplRbWptr.Match(line, &s.rings[id].wptr); err != nil {
				return err
			}
		case strings.HasPrefix(line, "    size:"):
			if err := tmplRbSize.Match(line, &s.rings[id].size); err != nil {
				return err
			}
		case strings.HasPrefix(line, dataPrefix):
			s.echo(line)
			rb := &s.rings[id]
			rb.buf = s.popAscii85(rb.size / 4)
			s.mem.Add(rb.iova, rb.buf)
			return nil
		}
		s.echo(line)
		return nil
	})
}

// annotateRegister writes the value plus its symbolic decode after an
// echoed register line.
func (s *Session) annotateRegister(db *regdb.Database, offset, value uint32) {
	fmt.Fprintf(s.out, "\t%08x\t", value)
	if db != nil {
		if name, text, ok := db.Decode(offset, value); ok {
			fmt.Fprintf(s.out, "%s: %s\n", name, text)
			return
		}
	}
	fmt.Fprintf(s.out, "<%04x>: %08x\n", offset, value)
}

// decodeRegisters handles the primary registers section: each pair both
// writes RegisterState and is rendered through the family database.
func (s *Session) decodeRegisters() error {
	return report.ScanSection(s.src, func(line string) error {
		var offset, value uint32
		if err := tmplRegPair.Match(line, &offset, &value); err != nil {
			return err
		}
		s.echo(line)
		s.regs.Set(offset/4, value)
		s.annotateRegister(s.db, offset/4, value)
		return nil
	})
}

// decodeGmuRegisters renders coprocessor registers through the GMU
// database. They live in a disjoint address space and play no part in
// ring reconstruction, so RegisterState is left alone.
func (s *Session) decodeGmuRegisters() error {
	return report.ScanSection(s.src, func(line string) error {
		var offset, value uint32
		if err := tmplRegPair.Match(line, &offset, &value); err != nil {
			return err
		}
		s.echo(line)
		s.annotateRegister(s.gmu, offset/4, value)
		return nil
	})
}

// decodeClusters handles banked context registers: one extra nesting
// level (cluster name, then context), rendered like plain registers.
func (s *Session) decodeClusters() error {
	return report.ScanSection(s.src, func(line string) error {
		if strings.HasPrefix(line, "  - cluster-name:") ||
			strings.HasPrefix(line, "    - context:") {
			s.echo(line)
			return nil
		}

		var offset, value uint32
		if err := tmplClusterPair.Match(line, &offset, &value); err != nil {
			return err
		}
		s.echo(line)
		s.annotateRegister(s.db, offset/4, value)
		return nil
	})
}

// indexed-register groups that are worth dumping even without -v.
func indexedAlwaysDumped(name string) bool {
	switch name {
	case "CP_SEQ_STAT", "CP_DRAW_STATE", "CP_ROQ":
		return true
	}
	return false
}

// decodeIndexedRegisters handles the debug FIFO snapshots. Most groups
// are large and uninteresting, so dumping is gated on verbosity outside
// a small allow-list.
func (s *Session) decodeIndexedRegisters() error {
	var name string
	var sizedwords uint32

	return report.ScanSection(s.src, func(line string) error {
		switch {
		case strings.HasPrefix(line, "  - regs-name:"):
			if err := tmplRegsName.Match(line, &name); err != nil {
				return err
			}
		case strings.HasPrefix(line, "    dwords:"):
			if err := tmplDwords.Match(line, &sizedwords); err != nil {
				return err
			}
		case strings.HasPrefix(line, dataPrefix):
			s.echo(line)
			buf := s.popAscii85(sizedwords)

			if name == "CP_SEQ_STAT" {
				s.dumpCPSeqStat(buf)
			}
			if s.opts.Verbose || indexedAlwaysDumped(name) {
				hexdump.Dump(s.out, buf, 1)
			}
			return nil
		}
		s.echo(line)
		return nil
	})
}

// dumpCPSeqStat gives the sequencer state its specialized breakdown: a
// program counter, the opcode of the packet being processed when it
// looks like a valid header, then the 32 sequencer registers in two
// columns.
func (s *Session) dumpCPSeqStat(stat []uint32) {
	if len(stat) < 33 {
		return
	}
	fmt.Fprintf(s.out, "\t PC: %04x\n", stat[0])
	stat = stat[1:]

	if s.caps.validHeader(stat[0]) && pm4.IsType7(stat[0]) {
		if name := pm4.OpcodeName(pm4.Type7Opcode(stat[0])); name != "" {
			fmt.Fprintf(s.out, "\tPKT: %s\n", name)
		}
	}

	for i := 0; i < 16; i++ {
		fmt.Fprintf(s.out, "\t$%02x: %08x\t\t$%02x: %08x\n",
			i, stat[i], i+16, stat[i+16])
	}
}

// shader-block types containing instruction memory.
func shaderInstBlock(typ string) bool {
	switch typ {
	case "A6XX_SP_INST_DATA", "A6XX_HLSQ_INST_RAM":
		return true
	}
	return false
}

// decodeShaderBlocks forwards instruction-memory blocks to the shader
// disassembler; everything else is hex-dumped only when verbose.
func (s *Session) decodeShaderBlocks() error {
	var typ string
	var sizedwords uint32

	return report.ScanSection(s.src, func(line string) error {
		switch {
		case strings.HasPrefix(line, "  - type:"):
			if err := tmplShaderType.Match(line, &typ); err != nil {
				return err
			}
		case strings.HasPrefix(line, "      size:"):
			if err := tmplShaderSize.Match(line, &sizedwords); err != nil {
				return err
			}
		case strings.HasPrefix(line, dataPrefix):
			s.echo(line)
			buf := s.popAscii85(sizedwords)

			if shaderInstBlock(typ) {
				if err := s.shader.Disassemble(s.out, buf, s.gpuID); err != nil {
					s.log.Warningf("shader disassembly failed: %v", err)
				}
			}
			if s.opts.Verbose || shaderInstBlock(typ) {
				hexdump.Dump(s.out, buf, 1)
			}
			return nil
		}
		s.echo(line)
		return nil
	})
}

// decodeDebugbus has no specialized interpretation; blocks are dumped
// only when verbose.
func (s *Session) decodeDebugbus() error {
	var sizedwords uint32

	return report.ScanSection(s.src, func(line string) error {
		switch {
		case strings.HasPrefix(line, "  - debugbus-block:"):
			var block string
			if err := tmplDebugbusBlock.Match(line, &block); err != nil {
				return err
			}
		case strings.HasPrefix(line, "    count:"):
			if err := tmplDebugbusCount.Match(line, &sizedwords); err != nil {
				return err
			}
		case strings.HasPrefix(line, dataPrefix):
			s.echo(line)
			buf := s.popAscii85(sizedwords)
			if s.opts.Verbose {
				hexdump.Dump(s.out, buf, 1)
			}
			return nil
		}
		s.echo(line)
		return nil
	})
}
