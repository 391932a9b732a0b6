// Package profile holds the analysis configuration for a target binary.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SubsystemRule maps interrupt vectors to a subsystem tag. Rules are
// evaluated in list order, first match wins.
type SubsystemRule struct {
	Tag     string   `yaml:"tag"`
	Vectors []string `yaml:"vectors"`
}

// Profile represents the analysis configuration for one executable.
type Profile struct {
	ProgramName string          `yaml:"program_name"`
	Language    string          `yaml:"language"`
	Subsystems  []SubsystemRule `yaml:"subsystems"`
}

// Default returns the profile for GP.EXE, the binary this tool was built
// around: 16-bit little-endian real-mode x86 with the stock DOS-era
// interrupt classification table.
func Default() *Profile {
	return &Profile{
		ProgramName: "GP.EXE",
		Language:    "x86:LE:16:Real Mode / default",
		Subsystems: []SubsystemRule{
			{Tag: "video", Vectors: []string{"0x10"}},
			{Tag: "dos", Vectors: []string{"0x21"}},
			{Tag: "input", Vectors: []string{"0x16"}},
			{Tag: "timer", Vectors: []string{"0x08", "0x1C"}},
			{Tag: "mouse", Vectors: []string{"0x33"}},
			{Tag: "sound", Vectors: []string{"0x80", "0x81"}},
		},
	}
}

// LoadProfile loads an analysis profile from a YAML file. Fields absent
// from the file keep their defaults.
func LoadProfile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}

	profile := Default()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return profile, nil
}
