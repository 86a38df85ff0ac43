package regdb

import (
	"strings"
	"testing"
)

func TestForGPU(t *testing.T) {
	tests := []struct {
		gpuID uint32
		want  string
	}{
		{630, "A6XX"},
		{650, "A6XX"},
		{540, "A5XX"},
		{420, "AXXX"},
		{330, "AXXX"},
	}
	for _, tt := range tests {
		if got := ForGPU(tt.gpuID).Name(); got != tt.want {
			t.Errorf("ForGPU(%d).Name() = %q, want %q", tt.gpuID, got, tt.want)
		}
	}
}

func TestOffsetLookupRoundTrip(t *testing.T) {
	db := ForGPU(630)

	off, ok := db.Offset("CP_RB_BASE")
	if !ok {
		t.Fatal("Offset(CP_RB_BASE) not found")
	}
	if off != 0x800 {
		t.Errorf("Offset(CP_RB_BASE) = %#x, want 0x800", off)
	}

	info := db.Lookup(off)
	if info == nil || info.Name != "CP_RB_BASE" {
		t.Errorf("Lookup(%#x) = %+v, want CP_RB_BASE", off, info)
	}

	if db.Lookup(0x7fff0) != nil {
		t.Error("Lookup of unknown offset returned info")
	}
}

func TestDecodeFields(t *testing.T) {
	db := ForGPU(630)
	off, _ := db.Offset("CP_CSQ_IB1_STAT")

	name, text, ok := db.Decode(off, 0x00150002)
	if !ok {
		t.Fatal("Decode returned !ok for known register")
	}
	if name != "CP_CSQ_IB1_STAT" {
		t.Errorf("name = %q", name)
	}
	if !strings.Contains(text, "WPTR = 0x15") || !strings.Contains(text, "RPTR = 0x2") {
		t.Errorf("decoded text = %q, want WPTR/RPTR fields", text)
	}
}

func TestDecodePlainRegister(t *testing.T) {
	db := ForGPU(630)
	off, _ := db.Offset("CP_IB1_REM_SIZE")

	_, text, ok := db.Decode(off, 0xdeadbeef)
	if !ok || text != "deadbeef" {
		t.Errorf("Decode = %q, %v; want plain hex value", text, ok)
	}
}

func TestGMUDatabase(t *testing.T) {
	if GMU(630) == nil {
		t.Error("GMU(630) = nil, want a6xx GMU database")
	}
	if GMU(540) != nil {
		t.Error("GMU(540) != nil, want nil for pre-a6xx")
	}

	db := GMU(630)
	if _, ok := db.Offset("GMU_CM3_SYSRESET"); !ok {
		t.Error("GMU db missing GMU_CM3_SYSRESET")
	}
	// GPU and GMU address spaces are disjoint databases
	if _, ok := db.Offset("CP_RB_BASE"); ok {
		t.Error("GMU db unexpectedly knows CP_RB_BASE")
	}
}
