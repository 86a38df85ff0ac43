package crashdec

import "github.com/niej/envytools/internal/pm4"

// Caps is the family capability table entry selected at revision time.
// New hardware families are added by extending capsForGPU, not by
// editing the reconstruction algorithm.
type Caps struct {
	Name string
	// WideRegs: registers holding addresses are 64-bit pairs.
	WideRegs bool
	// Typed47: command stream uses type4/type7 headers with parity
	// bits, giving a reliable packet-start heuristic.
	Typed47 bool
	// ROQCorrection: the prefetch queue exposes per-IB occupancy in
	// the high half of the CSQ status registers, which must be added
	// back to the remaining sizes.
	ROQCorrection bool
}

func capsForGPU(gpuID uint32) Caps {
	switch {
	case gpuID >= 600 && gpuID < 700:
		return Caps{Name: "a6xx", WideRegs: true, Typed47: true, ROQCorrection: true}
	case gpuID >= 500:
		return Caps{Name: "a5xx", WideRegs: true, Typed47: true}
	default:
		return Caps{Name: "axxx"}
	}
}

// validHeader is the packet-start heuristic. Families without parity
// protected headers have no reliable marker, so any word is accepted
// there.
func (c Caps) validHeader(pkt uint32) bool {
	if !c.Typed47 {
		return true
	}
	return pm4.IsType4(pkt) || pm4.IsType7(pkt)
}

// wrapAdd is modular ring arithmetic: ((n + b + v) mod n), correct for
// negative v down to -n, always in [0, n).
func wrapAdd(n, b, v int) int {
	return ((n + b + v) % n + n) % n
}
