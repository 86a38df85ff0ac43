package report

import "strings"

// The payload encoding is word oriented: up to 5 printable characters
// from the 85-symbol alphabet starting at '!' form one big-endian
// base-85 group per 32-bit word, and a bare 'z' is shorthand for an
// all-zero word. This is not the btoa/encoding-ascii85 byte framing, so
// it is decoded by hand to match the wire format exactly.

// DecodeAscii85 decodes one payload line into sizedwords 32-bit words.
// Leading indentation is skipped; decoding runs to the end of the line,
// the final group may be short. The result is always sized to the
// caller-declared word count: an overlong payload is truncated at the
// declaration, an undersized one leaves trailing zero words.
func DecodeAscii85(line string, sizedwords uint32) []uint32 {
	buf := make([]uint32, sizedwords)

	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}

	idx := 0
	for i < len(line) && idx < len(buf) {
		if line[i] == 'z' {
			buf[idx] = 0
			idx++
			i++
			continue
		}

		var accum uint32
		for k := 0; k < 5 && i < len(line); k++ {
			accum *= 85
			accum += uint32(line[i] - '!')
			i++
		}
		buf[idx] = accum
		idx++
	}

	return buf
}

// EncodeAscii85 renders words as a single payload line body (no
// indentation). Zero words use the 'z' shorthand. Used by tests and
// tooling that synthesize reports; decode(encode(w)) == w.
func EncodeAscii85(words []uint32) string {
	var sb strings.Builder
	for _, w := range words {
		if w == 0 {
			sb.WriteByte('z')
			continue
		}
		var grp [5]byte
		for k := 4; k >= 0; k-- {
			grp[k] = byte(w%85) + '!'
			w /= 85
		}
		sb.Write(grp[:])
	}
	return sb.String()
}
