package scenfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scenarios/internal/scenario"
)

// scenarioBlockSchema describes the only block an HCL scenario file may
// contain: scenario "name" { env = { KEY = "value" } }.
var scenarioBlockSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "scenario", LabelNames: []string{"name"}},
	},
}

// parseHCL reads scenario blocks from an HCL file. Note that HCL object
// keys carry no source order; variables are taken in cty's sorted key
// order, which is deterministic.
func parseHCL(filename string, data []byte) ([]scenario.Scenario, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	content, diags := file.Body.Content(scenarioBlockSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	var scenarios []scenario.Scenario
	for _, block := range content.Blocks {
		s, err := scenario.New(block.Labels[0])
		if err != nil {
			return nil, err
		}
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diags
		}
		for name, attr := range attrs {
			if name != "env" {
				return nil, fmt.Errorf("scenario %q: unsupported attribute %q", s.Name, name)
			}
			if err := decodeEnv(s, attr); err != nil {
				return nil, err
			}
		}
		scenarios = append(scenarios, *s)
	}
	return scenarios, nil
}

func decodeEnv(s *scenario.Scenario, attr *hcl.Attribute) error {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	if !val.CanIterateElements() {
		return fmt.Errorf("scenario %q: env must be an object of strings", s.Name)
	}
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		if v.Type() != cty.String || v.IsNull() {
			return fmt.Errorf("scenario %q: env value for %q must be a string", s.Name, k.AsString())
		}
		if err := s.Add(k.AsString(), v.AsString()); err != nil {
			return fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	return nil
}
