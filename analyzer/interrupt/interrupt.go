// Package interrupt finds software-interrupt invocations, attributes
// them to their containing function, and classifies subsystem tags.
package interrupt

import (
	"fmt"
	"slices"

	"github.com/retrodev/mzmap/catalog"
	"github.com/retrodev/mzmap/profile"
)

// opInt is the INT imm8 opcode.
const opInt = 0xCD

// Occurrence is one software-interrupt site in the code region.
type Occurrence struct {
	Offset int    // absolute file offset of the INT opcode
	Vector string // vector number as "0xXX"
}

// Scan sweeps the code region for INT imm8. The sweep advances two bytes
// past a match (opcode plus vector) and one byte otherwise.
func Scan(data []byte, codeStart int) []Occurrence {
	code := data[codeStart:]
	var occurrences []Occurrence

	i := 0
	for i < len(code)-1 {
		if code[i] == opInt {
			occurrences = append(occurrences, Occurrence{
				Offset: codeStart + i,
				Vector: fmt.Sprintf("0x%02X", code[i+1]),
			})
			i += 2
		} else {
			i++
		}
	}
	return occurrences
}

// Attribute assigns each occurrence to the function whose entry is the
// largest address at or below it, and returns the deduplicated vector
// list per entry address, in discovery order.
//
// An occurrence before the first known entry stays unattributed and is
// dropped. There is no bound against the end of the owning function: an
// INT in an address gap after a function still attributes to it.
func Attribute(occurrences []Occurrence, entries []int) map[int][]string {
	sorted := slices.Clone(entries)
	slices.Sort(sorted)

	usage := make(map[int][]string)
	for _, occ := range occurrences {
		idx, found := slices.BinarySearch(sorted, occ.Offset)
		if !found {
			idx--
		}
		if idx < 0 {
			continue
		}
		entry := sorted[idx]
		if !slices.Contains(usage[entry], occ.Vector) {
			usage[entry] = append(usage[entry], occ.Vector)
		}
	}
	return usage
}

// Classify returns the subsystem tag for a function's accumulated vector
// set. Rules are evaluated in priority order, first match wins, so the
// result depends only on the set, never on discovery order.
func Classify(vectors []string, rules []profile.SubsystemRule) string {
	for _, rule := range rules {
		for _, v := range rule.Vectors {
			if slices.Contains(vectors, v) {
				return rule.Tag
			}
		}
	}
	return catalog.SubsystemUnknown
}
