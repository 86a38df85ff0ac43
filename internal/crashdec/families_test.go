package crashdec

import (
	"testing"

	"github.com/niej/envytools/internal/pm4"
)

func TestWrapAdd(t *testing.T) {
	tests := []struct {
		n, b, v int
		want    int
	}{
		{8, 1, -3, 6}, // true modulo for negative inputs
		{8, 0, 0, 0},
		{8, 7, 1, 0},
		{8, 7, 3, 2},
		{16, 2, -12, 6},
		{16, 10, -12, 14},
		{8, 1, -12, 5}, // shift larger than the ring
		{16, 14, -9, 5},
	}
	for _, tt := range tests {
		if got := wrapAdd(tt.n, tt.b, tt.v); got != tt.want {
			t.Errorf("wrapAdd(%d, %d, %d) = %d, want %d", tt.n, tt.b, tt.v, got, tt.want)
		}
	}
}

func TestCapsForGPU(t *testing.T) {
	tests := []struct {
		gpuID uint32
		want  Caps
	}{
		{630, Caps{Name: "a6xx", WideRegs: true, Typed47: true, ROQCorrection: true}},
		{540, Caps{Name: "a5xx", WideRegs: true, Typed47: true}},
		{420, Caps{Name: "axxx"}},
		{305, Caps{Name: "axxx"}},
	}
	for _, tt := range tests {
		if got := capsForGPU(tt.gpuID); got != tt.want {
			t.Errorf("capsForGPU(%d) = %+v, want %+v", tt.gpuID, got, tt.want)
		}
	}
}

func TestValidHeader(t *testing.T) {
	a6xx := capsForGPU(630)
	legacy := capsForGPU(420)

	t7 := pm4.Type7Header(pm4.CP_NOP, 0)
	t4 := pm4.Type4Header(0x800, 1)

	if !a6xx.validHeader(t7) || !a6xx.validHeader(t4) {
		t.Error("a6xx rejects valid type4/type7 headers")
	}
	if a6xx.validHeader(0) || a6xx.validHeader(0x12345678) {
		t.Error("a6xx accepts invalid headers")
	}

	// no reliable marker on older families: anything goes
	if !legacy.validHeader(0) || !legacy.validHeader(0x12345678) {
		t.Error("legacy family should accept any word")
	}
}
