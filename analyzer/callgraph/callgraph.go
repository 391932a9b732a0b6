// Package callgraph sweeps the code region of an MZ image for call
// instructions and records reverse call-site edges.
package callgraph

import (
	"encoding/binary"
	"sort"
)

// Call instruction opcodes recognized by the sweep.
const (
	opCallNearRel16 = 0xE8 // call rel16
	opCallFarPtr    = 0x9A // call ptr16:16
	opCallIndirect  = 0xFF // call r/m16 (modrm /2)
)

// Graph maps call targets to the call sites that reach them, in
// discovery order. It is transient: the merger consumes it and the
// per-function caller lists it populates are bounded later.
type Graph struct {
	callers map[int][]int
}

// Targets returns every recorded call target, ascending.
func (g *Graph) Targets() []int {
	targets := make([]int, 0, len(g.callers))
	for addr := range g.callers {
		targets = append(targets, addr)
	}
	sort.Ints(targets)
	return targets
}

// Callers returns the call-site offsets recorded for a target, in
// discovery order.
func (g *Graph) Callers(target int) []int {
	return g.callers[target]
}

// HasTarget reports whether any call resolved to the given offset.
func (g *Graph) HasTarget(addr int) bool {
	_, ok := g.callers[addr]
	return ok
}

func (g *Graph) add(target, source int) {
	g.callers[target] = append(g.callers[target], source)
}

// Extract performs a linear byte-level sweep over the code region. Only
// the opcode byte is matched, never the full instruction; targets
// resolving outside the file are dropped as expected heuristic noise.
//
// Indirect calls (FF /2) are detected but not resolved: the true
// instruction length needs operand decoding, so the sweep advances a
// single byte and the operand bytes may be re-examined as instruction
// starts. The confidence merge is tuned to the spurious targets this
// produces; resolving them shifts the precision/recall balance.
func Extract(data []byte, codeStart int) *Graph {
	g := &Graph{callers: make(map[int][]int)}
	code := data[codeStart:]

	i := 0
	for i < len(code)-3 {
		switch code[i] {
		case opCallNearRel16:
			if i+3 <= len(code) {
				rel := int(int16(binary.LittleEndian.Uint16(code[i+1:])))
				target := codeStart + i + 3 + rel
				if target >= 0 && target < len(data) {
					g.add(target, codeStart+i)
				}
			}
			i += 3
		case opCallFarPtr:
			if i+5 <= len(code) {
				offset := int(binary.LittleEndian.Uint16(code[i+1:]))
				segment := int(binary.LittleEndian.Uint16(code[i+3:]))
				target := segment*16 + offset
				if target < len(data) {
					g.add(target, codeStart+i)
				}
			}
			i += 5
		case opCallIndirect:
			i++
		default:
			i++
		}
	}
	return g
}
