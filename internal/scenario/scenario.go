// Package scenario defines the scenario value type and the merge engine
// that combines one scenario per axis into a single named environment.
package scenario

import (
	"fmt"
	"regexp"
)

// varNameRe matches valid environment variable names (C identifiers).
var varNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidVarName reports whether name is usable as an environment
// variable name.
func ValidVarName(name string) bool {
	return varNameRe.MatchString(name)
}

// Var is a single environment variable assignment.
type Var struct {
	Key   string
	Value string
}

// Scenario is a named, ordered set of environment variable assignments.
// Keys are unique within a scenario. A scenario is treated as immutable
// once its file has been parsed.
type Scenario struct {
	Name string
	Vars []Var
}

// New creates an empty scenario. The name must be non-empty.
func New(name string) (*Scenario, error) {
	if name == "" {
		return nil, fmt.Errorf("scenario name must not be empty")
	}
	return &Scenario{Name: name}, nil
}

// Add appends a variable definition, enforcing key validity and
// uniqueness within this scenario.
func (s *Scenario) Add(key, value string) error {
	if !ValidVarName(key) {
		return fmt.Errorf("invalid variable name: %q", key)
	}
	if s.Has(key) {
		return fmt.Errorf("duplicate variable: %q", key)
	}
	s.Vars = append(s.Vars, Var{Key: key, Value: value})
	return nil
}

// Has reports whether a variable named key is defined.
func (s *Scenario) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Get returns the value of the variable named key, if defined.
func (s *Scenario) Get(key string) (string, bool) {
	for _, v := range s.Vars {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

func (s *Scenario) String() string {
	return fmt.Sprintf("scenario %q", s.Name)
}
