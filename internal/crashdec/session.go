// Package crashdec decodes GPU crash-dump reports: it echoes the
// report line for line, recovers the binary state embedded in it
// (buffers, command ring, register values) and reconstructs the
// in-flight command stream for rendering.
package crashdec

import (
	"fmt"
	"io"
	"strings"

	"github.com/niej/envytools/common"
	"github.com/niej/envytools/internal/cffdec"
	"github.com/niej/envytools/internal/memacc"
	"github.com/niej/envytools/internal/regdb"
	"github.com/niej/envytools/internal/regs"
	"github.com/niej/envytools/internal/report"
)

// Options mirror the command line surface.
type Options struct {
	Verbose       bool
	AllRegs       bool
	Summary       bool
	DecodeMarkers bool
	Color         bool
}

// numRings is the fixed capacity of the ring table; the kernel dumps at
// most this many rings.
const numRings = 5

// ring holds one recovered ring-buffer descriptor.
type ring struct {
	iova uint64
	rptr uint32
	wptr uint32
	size uint32
	buf  []uint32
}

// Session is one decode run over a single report. All decode state is
// carried here rather than in package globals, so partial reports can
// be decoded in tests without process-wide fixtures.
type Session struct {
	src  *report.LineSource
	out  io.Writer
	log  common.Logger
	opts Options

	regs  *regs.File
	mem   *memacc.Registry
	rings [numRings]ring

	gpuID  uint32
	caps   Caps
	db     *regdb.Database
	gmu    *regdb.Database
	dec    *cffdec.Decoder
	shader cffdec.ShaderDisassembler
	inited bool
}

// New creates a Session reading a report from in and writing the
// annotated echo to out.
func New(in io.Reader, out io.Writer, opts Options) *Session {
	return &Session{
		src:    report.NewLineSource(in),
		out:    out,
		log:    common.NewStdLogger(common.SeverityWarning),
		opts:   opts,
		regs:   regs.NewFile(),
		mem:    memacc.NewRegistry(),
		shader: cffdec.HexShaderDisassembler{},
	}
}

// SetLogger replaces the diagnostics logger.
func (s *Session) SetLogger(l common.Logger) { s.log = l }

// SetShaderDisassembler replaces the shader rendering collaborator.
func (s *Session) SetShaderDisassembler(d cffdec.ShaderDisassembler) { s.shader = d }

// Run drives the decode to end of input. End of input is a clean stop;
// the only error return is a fatal parse mismatch.
func (s *Session) Run() error {
	for {
		line, ok := s.src.Next()
		if !ok {
			return nil
		}
		fmt.Fprintln(s.out, line)

		var err error
		switch {
		case strings.HasPrefix(line, "revision:"):
			err = s.initRevision(line)
		case strings.HasPrefix(line, "bos:"):
			err = s.decodeBos()
		case strings.HasPrefix(line, "ringbuffer:"):
			err = s.decodeRingbuffer()
		case strings.HasPrefix(line, "registers:"):
			if err = s.decodeRegisters(); err == nil {
				// buffer contents and CP register values are in;
				// take a stab at reconstructing the cmdstream
				s.dumpCmdstream()
			}
		case strings.HasPrefix(line, "registers-gmu:"):
			err = s.decodeGmuRegisters()
		case strings.HasPrefix(line, "indexed-registers:"):
			err = s.decodeIndexedRegisters()
		case strings.HasPrefix(line, "shader-blocks:"):
			err = s.decodeShaderBlocks()
		case strings.HasPrefix(line, "clusters:"):
			err = s.decodeClusters()
		case strings.HasPrefix(line, "debugbus:"):
			err = s.decodeDebugbus()
		}
		if err != nil {
			return err
		}
	}
}

var tmplRevision = report.MustTemplate("revision: {u}")

// initRevision performs the one-time GPU family initialization at the
// first revision line.
func (s *Session) initRevision(line string) error {
	if err := tmplRevision.Match(line, &s.gpuID); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Got gpu_id=%d\n", s.gpuID)

	if s.inited {
		// repeated revision lines keep the first family context
		return nil
	}
	s.caps = capsForGPU(s.gpuID)
	s.db = regdb.ForGPU(s.gpuID)
	s.gmu = regdb.GMU(s.gpuID)
	s.dec = cffdec.New(cffdec.Options{
		GPUID:         s.gpuID,
		AllRegs:       s.opts.AllRegs,
		Summary:       s.opts.Summary,
		DecodeMarkers: s.opts.DecodeMarkers,
		Color:         s.opts.Color,
	}, s.db, s.mem)
	s.inited = true
	return nil
}

// popAscii85 consumes and echoes the payload line following a data
// header, decoding it into the declared number of words.
func (s *Session) popAscii85(sizedwords uint32) []uint32 {
	line, ok := s.src.Next()
	if !ok {
		return make([]uint32, sizedwords)
	}
	fmt.Fprintln(s.out, line)
	return report.DecodeAscii85(line, sizedwords)
}

// regbase resolves a register name in the family database.
func (s *Session) regbase(name string) (uint32, bool) {
	off, ok := s.db.Offset(name)
	if !ok {
		s.log.Warningf("no %s in %s register database", name, s.db.Name())
	}
	return off, ok
}

// regval reads a 32-bit register recovered from the registers section.
func (s *Session) regval(name string) uint32 {
	off, ok := s.regbase(name)
	if !ok {
		return 0
	}
	return s.regs.Get(off)
}

// regval64 reads a register that is a 64-bit pair on wide-register
// families.
func (s *Session) regval64(name string) uint64 {
	off, ok := s.regbase(name)
	if !ok {
		return 0
	}
	val := uint64(s.regs.Get(off))
	if s.caps.WideRegs {
		val |= uint64(s.regs.Get(off+1)) << 32
	}
	return val
}
