package crashdec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niej/envytools/common"
	"github.com/niej/envytools/internal/cffdec"
	"github.com/niej/envytools/internal/memacc"
	"github.com/niej/envytools/internal/pm4"
	"github.com/niej/envytools/internal/regdb"
	"github.com/niej/envytools/internal/regs"
)

// newBareSession builds a Session with family context initialized, for
// driving dumpCmdstream directly.
func newBareSession(out *strings.Builder, gpuID uint32) *Session {
	s := &Session{
		out:    out,
		log:    common.NoOpLogger{},
		regs:   regs.NewFile(),
		mem:    memacc.NewRegistry(),
		gpuID:  gpuID,
		caps:   capsForGPU(gpuID),
		db:     regdb.ForGPU(gpuID),
		inited: true,
	}
	s.dec = cffdec.New(cffdec.Options{GPUID: gpuID}, s.db, s.mem)
	return s
}

func setReg(s *Session, name string, value uint32) {
	off, ok := s.db.Offset(name)
	if !ok {
		panic("unknown register " + name)
	}
	s.regs.Set(off, value)
}

func TestRingStartSearch(t *testing.T) {
	// N=16, rptr=10, wptr=14. The word at 10 fails the heuristic but
	// wrap(10-1)=9 passes: start must be 9 and cmdszdw wrap(14-9)=5.
	var out strings.Builder
	s := newBareSession(&out, 630)

	buf := make([]uint32, 16)
	buf[9] = pm4.Type7Header(pm4.CP_NOP, 4)
	s.rings[0] = ring{iova: 0x2000, rptr: 10, wptr: 14, size: 64, buf: buf}

	setReg(s, "CP_RB_BASE", 0x2000)
	s.dumpCmdstream()

	assert.Contains(t, out.String(), "found ring!")
	assert.Contains(t, out.String(), "got cmdszdw=5")
}

func TestRingStartFallback(t *testing.T) {
	// No word in the lookback window passes: fall back to rptr.
	var out strings.Builder
	s := newBareSession(&out, 630)

	s.rings[0] = ring{iova: 0x2000, rptr: 2, wptr: 6, size: 64, buf: make([]uint32, 16)}

	setReg(s, "CP_RB_BASE", 0x2000)
	s.dumpCmdstream()

	assert.Contains(t, out.String(), "got cmdszdw=4")
}

func TestNoMatchingRingIsSilentSkip(t *testing.T) {
	var out strings.Builder
	s := newBareSession(&out, 630)

	s.rings[0] = ring{iova: 0x9000, rptr: 0, wptr: 4, size: 64, buf: make([]uint32, 16)}

	setReg(s, "CP_RB_BASE", 0x2000)
	s.dumpCmdstream()

	assert.NotContains(t, out.String(), "found ring!")
	assert.NotContains(t, out.String(), "cmdszdw")
}

func TestRegisterStateClearedAfterReconstruction(t *testing.T) {
	var out strings.Builder
	s := newBareSession(&out, 630)

	setReg(s, "CP_RB_BASE", 0x2000)
	setReg(s, "CP_IB1_BASE", 0x4000)
	s.dumpCmdstream()

	off, _ := s.db.Offset("CP_RB_BASE")
	assert.False(t, s.regs.Written(off), "register state must be cleared once consumed")
}

func TestWideRegisterRead(t *testing.T) {
	var out strings.Builder
	s := newBareSession(&out, 630)

	setReg(s, "CP_RB_BASE", 0x00001000)
	setReg(s, "CP_RB_BASE_HI", 0xfd)
	assert.Equal(t, uint64(0xfd00001000), s.regval64("CP_RB_BASE"))

	// legacy families read a single 32-bit register
	legacy := newBareSession(&out, 420)
	setReg(legacy, "CP_RB_BASE", 0x1000)
	legacy.regs.Set(func() uint32 { o, _ := legacy.db.Offset("CP_RB_BASE"); return o + 1 }(), 0xfd)
	assert.Equal(t, uint64(0x1000), legacy.regval64("CP_RB_BASE"))
}

func TestROQCorrection(t *testing.T) {
	var out strings.Builder
	s := newBareSession(&out, 630)

	setReg(s, "CP_IB1_BASE", 0x4000)
	setReg(s, "CP_IB1_REM_SIZE", 10)
	// 3 words already fetched into the queue
	setReg(s, "CP_CSQ_IB1_STAT", 3<<16)
	s.dumpCmdstream()

	assert.Contains(t, out.String(), "IB1: 4000, 13")
}

func TestNoROQCorrectionOnA5xx(t *testing.T) {
	var out strings.Builder
	s := newBareSession(&out, 540)

	setReg(s, "CP_IB1_BASE", 0x4000)
	setReg(s, "CP_IB1_REM_SIZE", 10)
	s.dumpCmdstream()

	assert.Contains(t, out.String(), "IB1: 4000, 10")
}
