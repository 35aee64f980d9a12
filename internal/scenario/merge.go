package scenario

import (
	"fmt"
	"strings"
)

// DefaultDelimiter joins per-axis scenario names in a merged name.
const DefaultDelimiter = ", "

// MergeOptions control how scenarios from different axes are combined.
type MergeOptions struct {
	// Delimiter is inserted between per-axis names. Empty means
	// DefaultDelimiter.
	Delimiter string
	// Strict makes a variable defined by two axes an error instead of
	// letting the later axis overwrite the earlier one.
	Strict bool
}

// ConflictError reports a variable defined by two scenarios during a
// strict merge.
type ConflictError struct {
	Key   string
	Left  string // name of the scenario merged so far
	Right string // name of the scenario bringing the duplicate
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting definitions of %q by scenarios %q and %q", e.Key, e.Left, e.Right)
}

// Merge combines one scenario per axis, in axis order, into a single
// scenario. Names are joined by the delimiter. Variables are merged left
// to right; a key defined by a later axis overwrites the earlier value in
// place, unless strict mode turns the collision into a ConflictError.
func Merge(parts []Scenario, opts MergeOptions) (Scenario, error) {
	if len(parts) == 0 {
		return Scenario{}, fmt.Errorf("nothing to merge")
	}
	delim := opts.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	names := make([]string, len(parts))
	var vars []Var
	byKey := make(map[string]int)
	for i, part := range parts {
		names[i] = part.Name
		for _, v := range part.Vars {
			if at, ok := byKey[v.Key]; ok {
				if opts.Strict {
					return Scenario{}, &ConflictError{
						Key:   v.Key,
						Left:  strings.Join(names[:i], delim),
						Right: part.Name,
					}
				}
				vars[at].Value = v.Value
				continue
			}
			byKey[v.Key] = len(vars)
			vars = append(vars, v)
		}
	}
	return Scenario{Name: strings.Join(names, delim), Vars: vars}, nil
}
