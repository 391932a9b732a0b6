// Package prologue scans the code region of an MZ image for 16-bit
// function-entry byte signatures.
package prologue

import "bytes"

// Entry sequences recognized as function starts.
var patterns = [][]byte{
	{0x55, 0x8B, 0xEC}, // push bp; mov bp, sp
	{0x55, 0x89, 0xE5}, // push bp; mov bp, sp (alternate encoding)
	{0x55, 0x8B, 0xE5}, // push bp; mov bp, sp (alternate)
	{0xC8},             // enter
	{0x55},             // push bp only
}

// followSet is the opcodes allowed to follow a bare push bp for the match
// to count: frame setup, stack adjust, register saves, segment saves.
var followSet = map[byte]bool{
	0x8B: true, // mov r16, r/m16
	0x89: true, // mov r/m16, r16
	0x83: true, // sub/add sp, imm8 group
	0x56: true, // push si
	0x57: true, // push di
	0x1E: true, // push ds
	0x06: true, // push es
}

// Scan returns the set of absolute file offsets in [codeStart, len(data))
// that match a prologue signature. A bare push bp is accepted only when
// the next byte is in the follow set; rejected matches resume one byte
// later so overlapping candidates are still seen.
func Scan(data []byte, codeStart int) map[int]bool {
	found := make(map[int]bool)
	code := data[codeStart:]

	for _, pat := range patterns {
		bare := len(pat) == 1 && pat[0] == 0x55
		pos := 0
		for {
			idx := bytes.Index(code[pos:], pat)
			if idx < 0 {
				break
			}
			idx += pos
			if bare && (idx+1 >= len(code) || !followSet[code[idx+1]]) {
				pos = idx + 1
				continue
			}
			found[codeStart+idx] = true
			pos = idx + 1
		}
	}
	return found
}
