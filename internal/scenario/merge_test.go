package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustScenario(t *testing.T, name string, vars ...Var) Scenario {
	t.Helper()
	s, err := New(name)
	require.NoError(t, err)
	for _, v := range vars {
		require.NoError(t, s.Add(v.Key, v.Value))
	}
	return *s
}

func TestMerge_NamesAndDelimiter(t *testing.T) {
	t.Parallel()

	a := mustScenario(t, "Number-One")
	b := mustScenario(t, "Letter-A")

	merged, err := Merge([]Scenario{a, b}, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Number-One, Letter-A", merged.Name)

	merged, err = Merge([]Scenario{a, b}, MergeOptions{Delimiter: "/"})
	require.NoError(t, err)
	assert.Equal(t, "Number-One/Letter-A", merged.Name)
}

func TestMerge_LaterAxisOverwrites(t *testing.T) {
	t.Parallel()

	a := mustScenario(t, "a", Var{"X", "1"}, Var{"Y", "y"})
	b := mustScenario(t, "b", Var{"X", "2"})

	merged, err := Merge([]Scenario{a, b}, MergeOptions{})
	require.NoError(t, err)

	x, ok := merged.Get("X")
	require.True(t, ok)
	assert.Equal(t, "2", x)
	// The overwritten key keeps its original position.
	assert.Equal(t, []Var{{"X", "2"}, {"Y", "y"}}, merged.Vars)
}

func TestMerge_StrictConflict(t *testing.T) {
	t.Parallel()

	a := mustScenario(t, "a", Var{"X", "1"})
	b := mustScenario(t, "b", Var{"X", "2"})

	_, err := Merge([]Scenario{a, b}, MergeOptions{Strict: true})
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "X", conflict.Key)
	assert.Equal(t, "a", conflict.Left)
	assert.Equal(t, "b", conflict.Right)
}

func TestMerge_Empty(t *testing.T) {
	t.Parallel()

	_, err := Merge(nil, MergeOptions{})
	assert.Error(t, err)
}

func TestMerge_Single(t *testing.T) {
	t.Parallel()

	a := mustScenario(t, "only", Var{"K", "v"})
	merged, err := Merge([]Scenario{a}, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "only", merged.Name)
	assert.Equal(t, a.Vars, merged.Vars)
}
