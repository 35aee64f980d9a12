// Package scenfile loads scenario files into ordered scenario lists.
//
// Three formats are supported, chosen by file extension: the classic INI
// dialect (the default, also used for stdin), HCL scenario blocks, and
// YAML scenario lists. All loaders enforce the same contract: scenario
// names are unique within a file, variable names are valid identifiers,
// and no variable is defined twice within one scenario.
package scenfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/scenarios/internal/scenario"
)

// StdinName is the display name used when reading scenarios from stdin.
const StdinName = "<stdin>"

// File is one loaded scenario file: one axis of the combination space.
type File struct {
	// Name is the path as given on the command line, or StdinName.
	Name      string
	Scenarios []scenario.Scenario
}

// Format identifies a scenario-file syntax.
type Format int

const (
	FormatINI Format = iota
	FormatHCL
	FormatYAML
)

// DetectFormat picks the syntax for a path by extension. Unknown
// extensions and stdin fall back to INI.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatINI
	}
}

// Load reads one scenario file. The path "-" reads INI from stdin.
func Load(path string) (File, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return File{}, fmt.Errorf("%s: %w", StdinName, err)
		}
		return loadBytes(StdinName, FormatINI, data)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return loadBytes(path, DetectFormat(path), data)
}

func loadBytes(name string, format Format, data []byte) (File, error) {
	var (
		scenarios []scenario.Scenario
		err       error
	)
	switch format {
	case FormatHCL:
		scenarios, err = parseHCL(name, data)
	case FormatYAML:
		scenarios, err = parseYAML(data)
	default:
		scenarios, err = parseINI(data)
	}
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", name, err)
	}
	if err := checkUniqueNames(scenarios); err != nil {
		return File{}, fmt.Errorf("%s: %w", name, err)
	}
	return File{Name: name, Scenarios: scenarios}, nil
}

func checkUniqueNames(scenarios []scenario.Scenario) error {
	seen := make(map[string]struct{}, len(scenarios))
	for _, s := range scenarios {
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("duplicate scenario name: %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}
