package analyzer

import (
	"fmt"

	"github.com/retrodev/mzmap/analyzer/callgraph"
	"github.com/retrodev/mzmap/catalog"
	"github.com/retrodev/mzmap/mz"
)

// Provenance notes attached to records at creation.
const (
	notesEntry  = "Program entry point"
	notesHigh   = "auto-discovered (prologue+call)"
	notesMedium = "auto-discovered (call target)"
)

// merge combines the two scans into confidence-tiered records. High
// confidence is prologue and call target agreeing; call targets alone are
// medium. Prologue-only offsets never become records: prologue bytes
// occur mid-function too often, and dropping them keeps precision over
// recall.
//
// The entry record is synthesized first, unconditionally, so the catalog
// always carries the program's true entry even when neither heuristic
// finds it.
func merge(img *mz.Image, prologues map[int]bool, graph *callgraph.Graph) map[int]*catalog.Function {
	funcs := make(map[int]*catalog.Function, len(prologues))
	funcs[img.EntryLinear] = catalog.NewFunction(img.EntryLinear, "entry", notesEntry)

	targets := graph.Targets()
	for _, addr := range targets {
		if prologues[addr] {
			addCandidate(funcs, img, graph, addr, notesHigh)
		}
	}
	for _, addr := range targets {
		if !prologues[addr] {
			addCandidate(funcs, img, graph, addr, notesMedium)
		}
	}
	return funcs
}

// addCandidate creates a record for addr unless one exists or addr falls
// before the code region (call targets can resolve into the header).
func addCandidate(funcs map[int]*catalog.Function, img *mz.Image, graph *callgraph.Graph, addr int, notes string) {
	if _, ok := funcs[addr]; ok {
		return
	}
	if addr < img.CodeStart {
		return
	}

	fn := catalog.NewFunction(addr, fmt.Sprintf("FUN_%05X", addr), notes)
	for _, source := range graph.Callers(addr) {
		fn.AddCaller(source)
	}
	funcs[addr] = fn
}
