package analyzer

import (
	"sort"

	"github.com/retrodev/mzmap/catalog"
)

// maxSpan is the largest extent a 16-bit segment can address.
const maxSpan = 0xFFFF

// returnOpcodes marks the return family: near/far, with and without an
// immediate stack-adjust operand.
var returnOpcodes = map[byte]bool{
	0xC3: true, // ret
	0xC2: true, // ret imm16
	0xCB: true, // retf
	0xCA: true, // retf imm16
}

// estimateSizes bounds each function by the next function's entry (or end
// of file for the last) and takes the first return-family byte in that
// window as the end, inclusive. Windows without one are clamped to
// maxSpan.
func estimateSizes(funcs map[int]*catalog.Function, data []byte) {
	addrs := make([]int, 0, len(funcs))
	for addr := range funcs {
		addrs = append(addrs, addr)
	}
	sort.Ints(addrs)

	for i, addr := range addrs {
		next := len(data)
		if i+1 < len(addrs) {
			next = addrs[i+1]
		}
		funcs[addr].SizeBytes = windowSize(data[addr:next])
	}
}

func windowSize(window []byte) int {
	for off, b := range window {
		if returnOpcodes[b] {
			return off + 1
		}
	}
	if len(window) > maxSpan {
		return maxSpan
	}
	return len(window)
}
