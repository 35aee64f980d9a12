// Package space models the Cartesian product of scenario axes as an
// addressable, lazily-enumerable space of merged scenarios.
//
// Combinations are numbered by a linear index in [0, Size()). The index
// is a mixed-radix number over the axis lengths: the first axis is the
// most significant digit (varies slowest), the last axis the least
// significant (varies fastest). Enumeration, direct indexing and
// exclusion filtering all agree on this numbering.
package space

import (
	"errors"
	"fmt"
	"iter"

	"github.com/vk/scenarios/internal/scenario"
)

// ErrIndexOutOfRange is returned by At for indices outside [0, Size()).
var ErrIndexOutOfRange = errors.New("combination index out of range")

// Axis is one input list of scenarios, contributing one dimension to the
// product space.
type Axis struct {
	// Source names the file the axis came from, for diagnostics.
	Source    string
	Scenarios []scenario.Scenario
}

// Merged is a merged scenario together with its position in the
// canonical enumeration order.
type Merged struct {
	scenario.Scenario
	LinearIndex int
}

// Space is the product of a fixed, ordered sequence of axes. It never
// materializes the product; both enumeration and indexing use O(number
// of axes) extra space.
type Space struct {
	axes  []Axis
	opts  scenario.MergeOptions
	total int
}

// New builds a space over the given axes. The axis order must match the
// command-line order of the scenario files; it determines the
// enumeration order. An empty axis collapses the space to size 0.
func New(axes []Axis, opts scenario.MergeOptions) *Space {
	total := 1
	for _, ax := range axes {
		total *= len(ax.Scenarios)
	}
	if len(axes) == 0 {
		total = 0
	}
	return &Space{axes: axes, opts: opts, total: total}
}

// Size returns the total number of combinations.
func (s *Space) Size() int { return s.total }

// At decodes a linear index directly into one merged scenario, without
// enumerating. Cost is proportional to the number of axes.
func (s *Space) At(index int) (Merged, error) {
	if index < 0 || index >= s.total {
		return Merged{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, s.total)
	}
	parts := make([]scenario.Scenario, len(s.axes))
	rest := index
	for j := len(s.axes) - 1; j >= 0; j-- {
		n := len(s.axes[j].Scenarios)
		parts[j] = s.axes[j].Scenarios[rest%n]
		rest /= n
	}
	return s.merge(parts, index)
}

// All enumerates every combination in ascending linear-index order.
// Each range starts a fresh traversal from index 0. In strict merge
// mode a combination may yield a non-nil error instead of a value.
func (s *Space) All() iter.Seq2[Merged, error] {
	return s.WithExclusions(nil)
}

// WithExclusions enumerates like All but skips any linear index present
// in excluded. Indices outside [0, Size()) are ignored; they denote "not
// present" either way.
func (s *Space) WithExclusions(excluded map[int]struct{}) iter.Seq2[Merged, error] {
	return func(yield func(Merged, error) bool) {
		if s.total == 0 {
			return
		}
		digits := make([]int, len(s.axes))
		parts := make([]scenario.Scenario, len(s.axes))
		for index := 0; index < s.total; index++ {
			if _, skip := excluded[index]; !skip {
				for j, ax := range s.axes {
					parts[j] = ax.Scenarios[digits[j]]
				}
				if !yield(s.merge(parts, index)) {
					return
				}
			}
			// Increment the mixed-radix counter, last axis fastest.
			for j := len(digits) - 1; j >= 0; j-- {
				digits[j]++
				if digits[j] < len(s.axes[j].Scenarios) {
					break
				}
				digits[j] = 0
			}
		}
	}
}

func (s *Space) merge(parts []scenario.Scenario, index int) (Merged, error) {
	merged, err := scenario.Merge(parts, s.opts)
	if err != nil {
		return Merged{}, err
	}
	return Merged{Scenario: merged, LinearIndex: index}, nil
}
