// Package analyzer runs the function-recovery pipeline over a parsed MZ
// image.
package analyzer

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/retrodev/mzmap/analyzer/callgraph"
	"github.com/retrodev/mzmap/analyzer/interrupt"
	"github.com/retrodev/mzmap/analyzer/prologue"
	"github.com/retrodev/mzmap/catalog"
	"github.com/retrodev/mzmap/mz"
	"github.com/retrodev/mzmap/profile"
)

// Pipeline threads each stage's result into the next. Stages run strictly
// in order: merging needs both complete scans, interrupt attribution
// needs the complete merged address set, and size estimation needs the
// final address order.
type Pipeline struct {
	profile *profile.Profile
	log     *log.Logger
}

// New creates a pipeline for the given profile. A nil logger discards
// stage progress.
func New(prof *profile.Profile, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{profile: prof, log: logger}
}

// Run executes the full pipeline and assembles the catalog. The image is
// only read; all mutation happens on records the pipeline itself created.
func (p *Pipeline) Run(img *mz.Image) *catalog.Catalog {
	prologues := prologue.Scan(img.Data, img.CodeStart)
	p.log.Info("prologue scan complete", "candidates", len(prologues))

	graph := callgraph.Extract(img.Data, img.CodeStart)
	p.log.Info("call scan complete", "targets", len(graph.Targets()))

	funcs := merge(img, prologues, graph)
	p.log.Info("candidates merged", "functions", len(funcs))

	occurrences := interrupt.Scan(img.Data, img.CodeStart)
	p.log.Info("interrupt scan complete", "occurrences", len(occurrences))
	annotate(funcs, occurrences, p.profile.Subsystems)

	estimateSizes(funcs, img.Data)

	return catalog.New(p.profile.ProgramName, p.profile.Language, img.Data, funcs)
}

// annotate attaches interrupt usage and a subsystem tag to each function
// that owns at least one occurrence. Classification runs once per
// function, after its full vector set is known.
func annotate(funcs map[int]*catalog.Function, occurrences []interrupt.Occurrence, rules []profile.SubsystemRule) {
	entries := make([]int, 0, len(funcs))
	for addr := range funcs {
		entries = append(entries, addr)
	}

	for addr, vectors := range interrupt.Attribute(occurrences, entries) {
		fn := funcs[addr]
		fn.IntUsage = vectors
		fn.Subsystem = interrupt.Classify(vectors, rules)
	}
}
