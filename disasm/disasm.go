// Package disasm renders a 16-bit instruction listing for a window of a
// recovered function. It is a presentation aid for cataloged functions;
// none of the discovery heuristics consume decoded instructions.
package disasm

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/arch/x86/x86asm"
)

// mode16 selects real-mode 16-bit decoding.
const mode16 = 16

// Line is one row of a listing.
type Line struct {
	Offset int    // absolute file offset of the instruction
	Bytes  string // raw encoding, uppercase hex
	Text   string // Intel-syntax disassembly, or a db directive
}

// Listing decodes [start, start+size) of the image. Decode failures emit
// the offending byte as a db directive and resync one byte later, so a
// listing is produced for any window.
func Listing(data []byte, start, size int) ([]Line, error) {
	if start < 0 || start >= len(data) {
		return nil, fmt.Errorf("window start 0x%X outside %d-byte image", start, len(data))
	}
	end := start + size
	if end > len(data) {
		end = len(data)
	}

	var lines []Line
	offset := start
	for offset < end {
		inst, err := x86asm.Decode(data[offset:end], mode16)
		if err != nil {
			lines = append(lines, Line{
				Offset: offset,
				Bytes:  fmt.Sprintf("%02X", data[offset]),
				Text:   fmt.Sprintf("db 0x%02X", data[offset]),
			})
			offset++
			continue
		}
		lines = append(lines, Line{
			Offset: offset,
			Bytes:  strings.ToUpper(hex.EncodeToString(data[offset : offset+inst.Len])),
			Text:   strings.ToLower(x86asm.IntelSyntax(inst, uint64(offset), nil)),
		})
		offset += inst.Len
	}
	return lines, nil
}
