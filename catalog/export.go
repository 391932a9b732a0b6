package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// generatedAtLayout is ISO-8601 at second precision with a Z suffix.
const generatedAtLayout = "2006-01-02T15:04:05Z"

// New assembles a catalog from records keyed by entry address. The image
// is hashed whole for provenance; records are ordered ascending by
// address and not mutated.
func New(programName, language string, image []byte, funcs map[int]*Function) *Catalog {
	addrs := make([]int, 0, len(funcs))
	for addr := range funcs {
		addrs = append(addrs, addr)
	}
	sort.Ints(addrs)

	functions := make([]*Function, 0, len(addrs))
	for _, addr := range addrs {
		functions = append(functions, funcs[addr])
	}

	sum := sha256.Sum256(image)
	return &Catalog{
		ProgramName: programName,
		Language:    language,
		BinaryHash:  "sha256:" + hex.EncodeToString(sum[:]),
		GeneratedAt: time.Now().UTC().Format(generatedAtLayout),
		Functions:   functions,
	}
}

// Export writes the catalog as indented JSON, creating parent directories
// as needed. Write failures propagate; there is no partial-state recovery.
func (c *Catalog) Export(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create artifact directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write catalog: %w", err)
	}
	return nil
}

// Load reads an exported catalog back and restores the numeric entry
// addresses from their serialized form.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unable to parse catalog: %w", err)
	}
	for _, fn := range c.Functions {
		addr, err := strconv.ParseUint(strings.TrimPrefix(fn.EntryLinear, "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid entry address %q: %w", fn.EntryLinear, err)
		}
		fn.Addr = int(addr)
	}
	return &c, nil
}
