package scenfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vk/scenarios/internal/scenario"
)

// yamlScenario is one entry of a YAML scenario list. Env is kept as a
// raw node so the mapping's source order survives decoding.
type yamlScenario struct {
	Name string    `yaml:"name"`
	Env  yaml.Node `yaml:"env"`
}

// parseYAML reads a top-level sequence of {name, env} entries.
func parseYAML(data []byte) ([]scenario.Scenario, error) {
	var entries []yamlScenario
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	var scenarios []scenario.Scenario
	for i, entry := range entries {
		s, err := scenario.New(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if entry.Env.Kind != 0 {
			if entry.Env.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("scenario %q: env must be a mapping", s.Name)
			}
			// Mapping content alternates key and value nodes.
			for j := 0; j+1 < len(entry.Env.Content); j += 2 {
				k, v := entry.Env.Content[j], entry.Env.Content[j+1]
				if v.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("scenario %q: env value for %q must be a scalar (line %d)", s.Name, k.Value, v.Line)
				}
				if err := s.Add(k.Value, v.Value); err != nil {
					return nil, fmt.Errorf("scenario %q: %w (line %d)", s.Name, err, k.Line)
				}
			}
		}
		scenarios = append(scenarios, *s)
	}
	return scenarios, nil
}
