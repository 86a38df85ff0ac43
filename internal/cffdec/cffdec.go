// Package cffdec renders a recovered command stream: it walks a word
// buffer packet by packet, names opcodes, decodes register writes
// through the symbolic database and follows indirect buffers through
// the buffer registry.
package cffdec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/niej/envytools/internal/hexdump"
	"github.com/niej/envytools/internal/memacc"
	"github.com/niej/envytools/internal/pm4"
	"github.com/niej/envytools/internal/regdb"
)

// maximum indirect buffer nesting followed from the ring (RB -> IB1 -> IB2)
const maxIBLevel = 2

// IB describes one indirect buffer in flight: base address and
// remaining (unretired) word count.
type IB struct {
	Base uint64
	Rem  uint32
}

// Options configure rendering.
type Options struct {
	GPUID         uint32
	AllRegs       bool
	Summary       bool
	DecodeMarkers bool
	Color         bool
}

// Decoder renders command streams for one GPU family.
type Decoder struct {
	opts    Options
	db      *regdb.Database
	mem     *memacc.Registry
	ibs     [3]IB
	written map[uint32]uint32
}

// New creates a Decoder rendering through db and resolving indirect
// buffers from mem.
func New(opts Options, db *regdb.Database, mem *memacc.Registry) *Decoder {
	return &Decoder{
		opts:    opts,
		db:      db,
		mem:     mem,
		written: make(map[uint32]uint32),
	}
}

// SetIBs records the in-flight indirect buffer descriptors recovered
// from the register section, used to annotate the matching CP_INDIRECT_BUFFER
// packets with their remaining size.
func (d *Decoder) SetIBs(ib1, ib2 IB) {
	d.ibs[1] = ib1
	d.ibs[2] = ib2
}

func (d *Decoder) typed47() bool { return d.opts.GPUID >= 500 }

// DumpCommands walks words as a packet stream and renders it to w.
// ibLevel is the indirection depth: 0 for the ring itself.
func (d *Decoder) DumpCommands(w io.Writer, words []uint32, ibLevel int) {
	for i := 0; i < len(words); {
		hdr := words[i]
		rest := words[i+1:]

		var consumed int
		switch {
		case d.typed47() && pm4.IsType7(hdr):
			consumed = d.dumpType7(w, hdr, rest, ibLevel)
		case d.typed47() && pm4.IsType4(hdr):
			consumed = d.dumpRegWrites(w, pm4.Type4Offset(hdr), pm4.Type4Size(hdr), rest, ibLevel)
		case !d.typed47() && pm4.IsType3(hdr):
			consumed = d.dumpType3(w, hdr, rest, ibLevel)
		case !d.typed47() && pm4.IsType0(hdr):
			consumed = d.dumpRegWrites(w, pm4.Type0Offset(hdr), pm4.Type0Size(hdr), rest, ibLevel)
		default:
			fmt.Fprintf(w, "%s%08x\n", levels(ibLevel), hdr)
		}
		i += 1 + consumed
	}
}

func (d *Decoder) dumpType7(w io.Writer, hdr uint32, rest []uint32, ibLevel int) int {
	opc := pm4.Type7Opcode(hdr)
	size := int(pm4.Type7Size(hdr))
	if size > len(rest) {
		size = len(rest)
	}
	d.dumpOpcode(w, opc, hdr, size, rest[:size], ibLevel)
	return size
}

func (d *Decoder) dumpType3(w io.Writer, hdr uint32, rest []uint32, ibLevel int) int {
	opc := pm4.Type3Opcode(hdr)
	size := int(pm4.Type3Size(hdr))
	if size > len(rest) {
		size = len(rest)
	}
	d.dumpOpcode(w, opc, hdr, size, rest[:size], ibLevel)
	return size
}

func (d *Decoder) dumpOpcode(w io.Writer, opc, hdr uint32, size int, payload []uint32, ibLevel int) {
	name := pm4.OpcodeName(opc)
	if name == "" {
		name = "UNKNOWN"
	}
	fmt.Fprintf(w, "%sopcode: %s (%02x) (%d dwords)\n",
		levels(ibLevel), d.colored(name), opc, size+1)

	switch opc {
	case pm4.CP_INDIRECT_BUFFER, pm4.CP_INDIRECT_BUFFER_PFE:
		d.followIB(w, payload, ibLevel)
	case pm4.CP_NOP:
		if d.opts.DecodeMarkers && len(payload) > 0 {
			if s := markerString(payload); s != "" {
				fmt.Fprintf(w, "%smarker: %s\n", levels(ibLevel+1), s)
			}
		}
	case pm4.CP_DRAW_INDX_OFFSET, pm4.CP_EXEC_CS:
		d.dumpDrawState(w, ibLevel)
	default:
		if !d.opts.Summary && d.opts.AllRegs {
			// payloads only interesting with full register dumps on
			hexdump.Dump(w, payload, ibLevel+1)
		}
	}
}

func (d *Decoder) dumpRegWrites(w io.Writer, offset, count uint32, rest []uint32, ibLevel int) int {
	n := int(count)
	if n > len(rest) {
		n = len(rest)
	}
	for k := 0; k < n; k++ {
		d.written[offset+uint32(k)] = rest[k]
		if d.opts.Summary {
			continue
		}
		d.DumpRegisterVal(w, offset+uint32(k), rest[k], ibLevel+1)
	}
	return n
}

// followIB resolves an indirect buffer reference through the registry
// and renders its contents, up to the nesting limit.
func (d *Decoder) followIB(w io.Writer, payload []uint32, ibLevel int) {
	var base uint64
	var size uint32

	if d.typed47() {
		if len(payload) < 3 {
			return
		}
		base = uint64(payload[0]) | uint64(payload[1])<<32
		size = payload[2]
	} else {
		if len(payload) < 2 {
			return
		}
		base = uint64(payload[0])
		size = payload[1]
	}

	for n := 1; n <= 2; n++ {
		if d.ibs[n].Base == base && d.ibs[n].Rem > 0 {
			fmt.Fprintf(w, "%sib %d rem: %d dwords\n", levels(ibLevel+1), n, d.ibs[n].Rem)
		}
	}

	words := d.mem.Words(base, size)
	if words == nil {
		fmt.Fprintf(w, "%sib: %016x (%d dwords) not in dump\n", levels(ibLevel+1), base, size)
		return
	}
	fmt.Fprintf(w, "%sib: %016x (%d dwords)\n", levels(ibLevel+1), base, size)
	if ibLevel >= maxIBLevel {
		return
	}
	d.DumpCommands(w, words, ibLevel+1)
}

// dumpDrawState prints every register written so far when allregs is
// set, mirroring draw-time state dumps.
func (d *Decoder) dumpDrawState(w io.Writer, ibLevel int) {
	if !d.opts.AllRegs {
		return
	}
	offsets := make([]uint32, 0, len(d.written))
	for off := range d.written {
		offsets = append(offsets, off)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	for _, off := range offsets {
		d.DumpRegisterVal(w, off, d.written[off], ibLevel+1)
	}
}

// DumpRegisterVal renders one register write through the database:
// symbolic name and decoded bitfields when known, raw offset otherwise.
func (d *Decoder) DumpRegisterVal(w io.Writer, offset, value uint32, level int) {
	name, text, ok := d.db.Decode(offset, value)
	if ok {
		fmt.Fprintf(w, "%s%s: %s\n", levels(level), d.colored(name), text)
		return
	}
	fmt.Fprintf(w, "%s<%04x>: %08x\n", levels(level), offset, value)
}

func (d *Decoder) colored(s string) string {
	if !d.opts.Color {
		return s
	}
	return "\x1b[36m" + s + "\x1b[0m"
}

func levels(n int) string {
	return strings.Repeat("\t", n+1)
}

// markerString interprets a CP_NOP payload as an inline ASCII marker,
// returning "" if the payload does not look like text.
func markerString(payload []uint32) string {
	var sb strings.Builder
	for _, word := range payload {
		for b := 0; b < 4; b++ {
			c := byte(word >> (8 * b))
			if c == 0 {
				return sb.String()
			}
			if c < 0x20 || c > 0x7e {
				return ""
			}
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
