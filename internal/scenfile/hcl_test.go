package scenfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHCL_Basic(t *testing.T) {
	t.Parallel()

	scenarios, err := parseHCL("test.hcl", []byte(`
scenario "Number One" {
  env = {
    number = "1"
    label  = "one"
  }
}

scenario "Number Two" {
  env = { number = "2" }
}
`))
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, "Number One", scenarios[0].Name)
	v, ok := scenarios[0].Get("number")
	require.True(t, ok)
	assert.Equal(t, "1", v)
	v, ok = scenarios[0].Get("label")
	require.True(t, ok)
	assert.Equal(t, "one", v)

	assert.Equal(t, "Number Two", scenarios[1].Name)
}

func TestParseHCL_EmptyEnv(t *testing.T) {
	t.Parallel()

	scenarios, err := parseHCL("test.hcl", []byte(`scenario "bare" {}`))
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Empty(t, scenarios[0].Vars)
}

func TestParseHCL_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"syntax error":          `scenario "broken" {`,
		"non-string env value":  `scenario "s" { env = { n = 1 } }`,
		"env not an object":     `scenario "s" { env = "flat" }`,
		"unsupported attribute": `scenario "s" { other = {} }`,
		"invalid variable name": `scenario "s" { env = { "1bad" = "x" } }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseHCL("test.hcl", []byte(src))
			assert.Error(t, err)
		})
	}
}
