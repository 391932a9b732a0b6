package interrupt

import (
	"testing"

	"github.com/retrodev/mzmap/catalog"
	"github.com/retrodev/mzmap/profile"
	"github.com/stretchr/testify/assert"
)

func TestScan(t *testing.T) {
	code := []byte{
		0x90,
		0xCD, 0x21, // int 21h
		0x90,
		0xCD, 0x10, // int 10h
		0x90,
	}
	data := append(make([]byte, 32), code...)

	occurrences := Scan(data, 32)
	assert.Equal(t, []Occurrence{
		{Offset: 33, Vector: "0x21"},
		{Offset: 36, Vector: "0x10"},
	}, occurrences)
}

func TestScanVectorIsNotRescanned(t *testing.T) {
	// The imm8 of one INT happens to be 0xCD itself; the sweep must step
	// past it, not treat it as a second INT opcode.
	code := []byte{0xCD, 0xCD, 0x90, 0x90}
	data := append(make([]byte, 32), code...)

	occurrences := Scan(data, 32)
	assert.Len(t, occurrences, 1)
	assert.Equal(t, "0xCD", occurrences[0].Vector)
}

func TestAttributeNearestPrecedingEntry(t *testing.T) {
	occurrences := []Occurrence{
		{Offset: 45, Vector: "0x21"},
		{Offset: 105, Vector: "0x10"},
		{Offset: 100, Vector: "0x16"}, // exactly at an entry
	}

	usage := Attribute(occurrences, []int{40, 100})
	assert.Equal(t, []string{"0x21"}, usage[40])
	assert.Equal(t, []string{"0x10", "0x16"}, usage[100])
}

func TestAttributeBeforeAnyEntryDropped(t *testing.T) {
	usage := Attribute([]Occurrence{{Offset: 35, Vector: "0x21"}}, []int{40})
	assert.Empty(t, usage)
}

func TestAttributeDeduplicatesVectors(t *testing.T) {
	occurrences := []Occurrence{
		{Offset: 41, Vector: "0x21"},
		{Offset: 43, Vector: "0x21"},
		{Offset: 45, Vector: "0x10"},
	}

	usage := Attribute(occurrences, []int{40})
	assert.Equal(t, []string{"0x21", "0x10"}, usage[40])
}

func TestAttributeGapAfterFunctionStillOwns(t *testing.T) {
	// No upper bound against the end of the owning function.
	usage := Attribute([]Occurrence{{Offset: 5000, Vector: "0x33"}}, []int{40})
	assert.Equal(t, []string{"0x33"}, usage[40])
}

func TestClassifyPriorityOrder(t *testing.T) {
	rules := profile.Default().Subsystems

	assert.Equal(t, "video", Classify([]string{"0x10", "0x21"}, rules))
	assert.Equal(t, "video", Classify([]string{"0x21", "0x10"}, rules))
	assert.Equal(t, "dos", Classify([]string{"0x21"}, rules))
	assert.Equal(t, "input", Classify([]string{"0x16"}, rules))
	assert.Equal(t, "timer", Classify([]string{"0x1C"}, rules))
	assert.Equal(t, "timer", Classify([]string{"0x08"}, rules))
	assert.Equal(t, "mouse", Classify([]string{"0x33"}, rules))
	assert.Equal(t, "sound", Classify([]string{"0x81"}, rules))
	assert.Equal(t, catalog.SubsystemUnknown, Classify([]string{"0x42"}, rules))
	assert.Equal(t, catalog.SubsystemUnknown, Classify(nil, rules))
}
