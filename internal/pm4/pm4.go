// Package pm4 holds the command-stream packet header helpers shared by
// the crash-dump decoder and the command renderer: parity calculation,
// header predicates for the legacy type0/type3 and the newer
// type4/type7 conventions, and the field extractors for each.
package pm4

const (
	type4Pkt = 0x4 << 28
	type7Pkt = 0x7 << 28
)

// OddParityBit folds val down to 4 bits and selects the matching bit of
// the 0x9669 parity table.
func OddParityBit(val uint32) uint32 {
	return (0x9669 >> (0xf & (val ^ (val >> 4) ^ (val >> 8) ^ (val >> 12) ^
		(val >> 16) ^ (val >> 20) ^ (val >> 24) ^ (val >> 28)))) & 1
}

// IsType0 reports whether pkt is a legacy type0 (register write) header.
func IsType0(pkt uint32) bool {
	return (pkt>>30)&0x3 == 0
}

// Type0Size returns the payload word count of a type0 packet.
func Type0Size(pkt uint32) uint32 { return ((pkt >> 16) & 0x3fff) + 1 }

// Type0Offset returns the base register offset of a type0 packet.
func Type0Offset(pkt uint32) uint32 { return pkt & 0x7fff }

// IsType3 reports whether pkt is a legacy type3 (opcode) header.
func IsType3(pkt uint32) bool {
	return (pkt&0xc0000000) == 0xc0000000 && (pkt&0x80fe) == 0
}

// Type3Opcode returns the opcode of a type3 packet.
func Type3Opcode(pkt uint32) uint32 { return (pkt >> 8) & 0xff }

// Type3Size returns the payload word count of a type3 packet.
func Type3Size(pkt uint32) uint32 { return ((pkt >> 16) & 0x3fff) + 1 }

// IsType4 reports whether pkt is a valid type4 (register write) header,
// checking both parity bits.
func IsType4(pkt uint32) bool {
	return (pkt&0xf0000000) == type4Pkt &&
		(pkt>>27)&0x1 == OddParityBit(Type4Offset(pkt)) &&
		(pkt>>7)&0x1 == OddParityBit(Type4Size(pkt))
}

// Type4Offset returns the base register offset of a type4 packet.
func Type4Offset(pkt uint32) uint32 { return (pkt >> 8) & 0x7ffff }

// Type4Size returns the payload word count of a type4 packet.
func Type4Size(pkt uint32) uint32 { return pkt & 0x7f }

// IsType7 reports whether pkt is a valid type7 (opcode) header,
// checking the reserved nibble and both parity bits.
func IsType7(pkt uint32) bool {
	return (pkt&0xf0000000) == type7Pkt &&
		(pkt&0x0f000000) == 0 &&
		(pkt>>23)&0x1 == OddParityBit(Type7Opcode(pkt)) &&
		(pkt>>15)&0x1 == OddParityBit(Type7Size(pkt))
}

// Type7Opcode returns the opcode of a type7 packet.
func Type7Opcode(pkt uint32) uint32 { return (pkt >> 16) & 0x7f }

// Type7Size returns the payload word count of a type7 packet.
func Type7Size(pkt uint32) uint32 { return pkt & 0x3fff }

// Type4Header builds a type4 header for a register write of cnt words
// starting at regindx.
func Type4Header(regindx, cnt uint32) uint32 {
	return type4Pkt | (cnt & 0x7f) | (OddParityBit(cnt&0x7f) << 7) |
		((regindx & 0x7ffff) << 8) | (OddParityBit(regindx&0x7ffff) << 27)
}

// Type7Header builds a type7 header for opcode with a cnt word payload.
func Type7Header(opcode, cnt uint32) uint32 {
	return type7Pkt | (cnt & 0x3fff) | (OddParityBit(cnt&0x3fff) << 15) |
		((opcode & 0x7f) << 16) | (OddParityBit(opcode&0x7f) << 23)
}

// Type3Header builds a legacy type3 header.
func Type3Header(opcode, cnt uint32) uint32 {
	return 0xc0000000 | (((cnt - 1) & 0x3fff) << 16) | ((opcode & 0xff) << 8)
}

// Type0Header builds a legacy type0 header.
func Type0Header(regindx, cnt uint32) uint32 {
	return (((cnt - 1) & 0x3fff) << 16) | (regindx & 0x7fff)
}
