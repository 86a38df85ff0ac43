package pm4

import "testing"

func TestOddParityBit(t *testing.T) {
	tests := []struct {
		val  uint32
		want uint32
	}{
		{0x0, 1},
		{0x1, 0},
		{0x3, 1},
		{0x7, 0},
		{0x10, 0},
		{0x3f, 1},
	}
	for _, tt := range tests {
		if got := OddParityBit(tt.val); got != tt.want {
			t.Errorf("OddParityBit(%#x) = %d, want %d", tt.val, got, tt.want)
		}
	}
}

func TestType7HeaderRoundTrip(t *testing.T) {
	for _, opc := range []uint32{CP_NOP, CP_INDIRECT_BUFFER, CP_SET_MARKER, 0x7f} {
		for _, cnt := range []uint32{0, 1, 3, 0x3fff} {
			hdr := Type7Header(opc, cnt)
			if !IsType7(hdr) {
				t.Errorf("IsType7(Type7Header(%#x, %d)) = false", opc, cnt)
			}
			if IsType4(hdr) {
				t.Errorf("Type7Header(%#x, %d) also matches type4", opc, cnt)
			}
			if got := Type7Opcode(hdr); got != opc {
				t.Errorf("Type7Opcode = %#x, want %#x", got, opc)
			}
			if got := Type7Size(hdr); got != cnt {
				t.Errorf("Type7Size = %d, want %d", got, cnt)
			}
		}
	}
}

func TestType4HeaderRoundTrip(t *testing.T) {
	for _, reg := range []uint32{0x800, 0x928, 0x1, 0x7ffff} {
		for _, cnt := range []uint32{1, 2, 0x7f} {
			hdr := Type4Header(reg, cnt)
			if !IsType4(hdr) {
				t.Errorf("IsType4(Type4Header(%#x, %d)) = false", reg, cnt)
			}
			if got := Type4Offset(hdr); got != reg {
				t.Errorf("Type4Offset = %#x, want %#x", got, reg)
			}
			if got := Type4Size(hdr); got != cnt {
				t.Errorf("Type4Size = %d, want %d", got, cnt)
			}
		}
	}
}

func TestType7RejectsCorruptParity(t *testing.T) {
	hdr := Type7Header(CP_NOP, 4)
	if IsType7(hdr ^ (1 << 23)) {
		t.Error("corrupt opcode parity accepted")
	}
	if IsType7(hdr ^ (1 << 15)) {
		t.Error("corrupt size parity accepted")
	}
	if IsType7(hdr | 0x01000000) {
		t.Error("nonzero reserved nibble accepted")
	}
}

func TestLegacyHeaders(t *testing.T) {
	hdr := Type3Header(CP_INDIRECT_BUFFER, 2)
	if !IsType3(hdr) {
		t.Error("IsType3(Type3Header(...)) = false")
	}
	if got := Type3Opcode(hdr); got != CP_INDIRECT_BUFFER {
		t.Errorf("Type3Opcode = %#x", got)
	}
	if got := Type3Size(hdr); got != 2 {
		t.Errorf("Type3Size = %d, want 2", got)
	}

	t0 := Type0Header(0x1c0, 3)
	if !IsType0(t0) {
		t.Error("IsType0(Type0Header(...)) = false")
	}
	if got := Type0Offset(t0); got != 0x1c0 {
		t.Errorf("Type0Offset = %#x", got)
	}
	if got := Type0Size(t0); got != 3 {
		t.Errorf("Type0Size = %d, want 3", got)
	}
}

func TestOpcodeName(t *testing.T) {
	if got := OpcodeName(CP_INDIRECT_BUFFER); got != "CP_INDIRECT_BUFFER" {
		t.Errorf("OpcodeName(CP_INDIRECT_BUFFER) = %q", got)
	}
	if got := OpcodeName(0x7e); got != "" {
		t.Errorf("OpcodeName(unknown) = %q, want \"\"", got)
	}
}
