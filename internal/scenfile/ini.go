package scenfile

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/vk/scenarios/internal/scenario"
)

// parseINI reads the classic dialect: `[name]` headers open a scenario,
// `KEY = value` lines define variables, `#`/`;` lines are comments. A
// definition before the first header is an error.
func parseINI(data []byte) ([]scenario.Scenario, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		// Keep duplicate headers and keys around instead of silently
		// merging them, so they can be rejected below.
		AllowNonUniqueSections: true,
		AllowShadows:           true,
	}, data)
	if err != nil {
		return nil, err
	}

	var scenarios []scenario.Scenario
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			if len(sec.Keys()) > 0 {
				return nil, fmt.Errorf("variable %q defined before the first scenario header", sec.Keys()[0].Name())
			}
			continue
		}
		s, err := scenario.New(sec.Name())
		if err != nil {
			return nil, err
		}
		for _, key := range sec.Keys() {
			if len(key.ValueWithShadows()) > 1 {
				return nil, fmt.Errorf("scenario %q: duplicate variable: %q", sec.Name(), key.Name())
			}
			if err := s.Add(key.Name(), key.Value()); err != nil {
				return nil, fmt.Errorf("scenario %q: %w", sec.Name(), err)
			}
		}
		scenarios = append(scenarios, *s)
	}
	return scenarios, nil
}
