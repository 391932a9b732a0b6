// Package catalog defines the recovered function table and the exported
// symbol-catalog artifact.
package catalog

import "fmt"

// MaxCallers bounds the callers list of a single function; call sites
// discovered beyond it are silently dropped.
const MaxCallers = 10

// SubsystemUnknown is the tag for functions whose interrupt usage matches
// no classification rule.
const SubsystemUnknown = "unknown"

// Function is one recovered function. Every field is always present in
// the artifact; zero values mean "not populated". StackFrameSize and
// SourceRecordingID are reserved for external augmentation stages and
// stay zero/empty here.
type Function struct {
	Name              string   `json:"name"`
	EntryLinear       string   `json:"entry_linear"`
	SizeBytes         int      `json:"size_bytes"`
	StackFrameSize    int      `json:"stack_frame_size"`
	Subsystem         string   `json:"subsystem"`
	Callers           []string `json:"callers"`
	IntUsage          []string `json:"int_usage"`
	SourceRecordingID string   `json:"source_recording_id"`
	Notes             string   `json:"notes"`

	// Addr is the numeric entry address; EntryLinear is its canonical
	// serialized form.
	Addr int `json:"-"`
}

// NewFunction creates a record with every list present and the subsystem
// defaulted to unknown.
func NewFunction(addr int, name, notes string) *Function {
	return &Function{
		Name:        name,
		EntryLinear: fmt.Sprintf("0x%X", addr),
		Subsystem:   SubsystemUnknown,
		Callers:     []string{},
		IntUsage:    []string{},
		Notes:       notes,
		Addr:        addr,
	}
}

// AddCaller appends a call-site address in discovery order, keeping at
// most MaxCallers.
func (f *Function) AddCaller(addr int) {
	if len(f.Callers) >= MaxCallers {
		return
	}
	f.Callers = append(f.Callers, fmt.Sprintf("0x%X", addr))
}

// Catalog is the exported artifact. Functions are ascending by entry
// address with no duplicate addresses.
type Catalog struct {
	ProgramName string      `json:"program_name"`
	Language    string      `json:"language"`
	BinaryHash  string      `json:"binary_hash"`
	GeneratedAt string      `json:"generated_at"`
	Functions   []*Function `json:"functions"`
}

// Lookup returns the function with the given name, or nil.
func (c *Catalog) Lookup(name string) *Function {
	for _, fn := range c.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}
