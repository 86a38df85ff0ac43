// Package hexdump renders word buffers as annotated hex/ascii dumps in
// the style the crash-dump tooling uses for verbose buffer output.
package hexdump

import (
	"fmt"
	"io"
	"strings"
)

const wordsPerRow = 8

// Dump writes words to w, eight per row, with a byte-wise ascii gutter.
// level sets the leading tab indentation of every row.
func Dump(w io.Writer, words []uint32, level int) {
	indent := strings.Repeat("\t", level)

	for row := 0; row < len(words); row += wordsPerRow {
		end := row + wordsPerRow
		if end > len(words) {
			end = len(words)
		}

		var hexCol, asciiCol strings.Builder
		for i := row; i < end; i++ {
			fmt.Fprintf(&hexCol, " %08x", words[i])
			for b := 0; b < 4; b++ {
				c := byte(words[i] >> (8 * b))
				if c < 0x20 || c > 0x7e {
					c = '.'
				}
				asciiCol.WriteByte(c)
			}
		}
		// pad short final row so the ascii gutter lines up
		for i := end; i < row+wordsPerRow; i++ {
			hexCol.WriteString("         ")
		}

		fmt.Fprintf(w, "%s%04x:%s\t|%s|\n", indent, row*4, hexCol.String(), asciiCol.String())
	}
}
