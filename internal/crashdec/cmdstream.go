package crashdec

import (
	"fmt"

	"github.com/niej/envytools/internal/cffdec"
)

// How far behind rptr to start looking for a packet boundary. The read
// pointer has usually moved past the IB into userspace cmdstream, so
// back up a bit and advance until a word passes the header heuristic.
const lookback = 12

// dumpCmdstream reconstructs the in-flight command stream once the
// registers section has been consumed: it reads the base/IB registers,
// clears register state, finds the active ring and hands the unread
// span to the command renderer.
func (s *Session) dumpCmdstream() {
	if !s.inited {
		s.log.Warningf("registers section before revision, skipping cmdstream decode")
		return
	}

	rbBase := s.regval64("CP_RB_BASE")
	fmt.Fprintf(s.out, "got rb_base=%x\n", rbBase)

	ib1 := cffdec.IB{Base: s.regval64("CP_IB1_BASE"), Rem: s.regval("CP_IB1_REM_SIZE")}
	ib2 := cffdec.IB{Base: s.regval64("CP_IB2_BASE"), Rem: s.regval("CP_IB2_REM_SIZE")}

	// Adjust remaining sizes for cmdstream already slurped into the
	// prefetch queue but not yet consumed by the sequencer.
	if s.caps.ROQCorrection {
		ib1.Rem += s.regval("CP_CSQ_IB1_STAT") >> 16
		ib2.Rem += s.regval("CP_CSQ_IB2_STAT") >> 16
	}

	fmt.Fprintf(s.out, "IB1: %x, %d\n", ib1.Base, ib1.Rem)
	fmt.Fprintf(s.out, "IB2: %x, %d\n", ib2.Base, ib2.Rem)

	// Now that we have the values we need, reset register state so
	// later sections don't render against stale values.
	s.regs.Reset()

	s.dec.SetIBs(ib1, ib2)

	for id := range s.rings {
		rb := &s.rings[id]
		if rb.iova != rbBase || len(rb.buf) == 0 {
			continue
		}

		fmt.Fprintln(s.out, "found ring!")

		// The ring wraps around, which the renderer doesn't deal
		// with, so materialize the unread span as a linear copy.
		ringszdw := int(rb.size >> 2)
		if ringszdw == 0 {
			continue
		}

		rptr := wrapAdd(ringszdw, int(rb.rptr), -lookback)
		for idx := 0; idx < lookback; idx++ {
			if s.caps.validHeader(rb.buf[rptr]) {
				break
			}
			rptr = wrapAdd(ringszdw, rptr, 1)
		}

		cmdszdw := wrapAdd(ringszdw, int(rb.wptr), -rptr)
		fmt.Fprintf(s.out, "got cmdszdw=%d\n", cmdszdw)

		buf := make([]uint32, cmdszdw)
		for idx := range buf {
			buf[idx] = rb.buf[wrapAdd(ringszdw, rptr, idx)]
		}

		s.dec.DumpCommands(s.out, buf, 0)
	}
}
