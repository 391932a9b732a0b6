package renderer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/retrodev/mzmap/catalog"
)

// TextRenderer formats the catalog as a structured coverage report.
type TextRenderer struct{}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer() Renderer {
	return &TextRenderer{}
}

// Render formats and writes the coverage summary for a catalog.
func (r *TextRenderer) Render(cat *catalog.Catalog, output io.Writer) error {
	subsystems := make(map[string]int)
	intCounts := make(map[string]int)
	named := 0
	for _, fn := range cat.Functions {
		subsystems[fn.Subsystem]++
		for _, vector := range fn.IntUsage {
			intCounts[vector]++
		}
		if !strings.HasPrefix(fn.Name, "FUN_") {
			named++
		}
	}

	var report strings.Builder

	report.WriteString("==============================\n")
	report.WriteString("Function Catalog Summary\n")
	report.WriteString("==============================\n\n")
	report.WriteString(fmt.Sprintf("Program: %s\n", cat.ProgramName))
	report.WriteString(fmt.Sprintf("Language: %s\n", cat.Language))
	report.WriteString(fmt.Sprintf("Binary: %s\n", cat.BinaryHash))
	report.WriteString(fmt.Sprintf("Generated: %s\n\n", cat.GeneratedAt))
	report.WriteString(fmt.Sprintf("Total functions: %d\n", len(cat.Functions)))
	report.WriteString(fmt.Sprintf("Named functions: %d\n\n", named))

	report.WriteString("------------------------------\n")
	report.WriteString("Breakdown by subsystem\n")
	report.WriteString("------------------------------\n")
	for _, tag := range sortedByCount(subsystems) {
		report.WriteString(fmt.Sprintf("- %s: %d functions\n", tag, subsystems[tag]))
	}

	report.WriteString("\n------------------------------\n")
	report.WriteString("INT usage counts\n")
	report.WriteString("------------------------------\n")
	if len(intCounts) == 0 {
		report.WriteString("- (none recorded)\n")
	} else {
		vectors := make([]string, 0, len(intCounts))
		for vector := range intCounts {
			vectors = append(vectors, vector)
		}
		sort.Strings(vectors)
		for _, vector := range vectors {
			report.WriteString(fmt.Sprintf("- %s: %d functions\n", vector, intCounts[vector]))
		}
	}

	_, err := output.Write([]byte(report.String()))
	return err
}

// sortedByCount orders tags by descending count, then name for stable
// output.
func sortedByCount(counts map[string]int) []string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	return tags
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
