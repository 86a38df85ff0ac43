package cffdec

import (
	"io"

	"github.com/niej/envytools/internal/hexdump"
)

// ShaderDisassembler renders recovered shader instruction words. The
// real instruction-set disassembler plugs in here; the default renders
// the raw instruction words.
type ShaderDisassembler interface {
	Disassemble(w io.Writer, words []uint32, gpuID uint32) error
}

// HexShaderDisassembler is the fallback ShaderDisassembler: a plain
// word dump of the instruction memory.
type HexShaderDisassembler struct{}

func (HexShaderDisassembler) Disassemble(w io.Writer, words []uint32, gpuID uint32) error {
	hexdump.Dump(w, words, 1)
	return nil
}
