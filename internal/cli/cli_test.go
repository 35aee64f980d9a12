package cli

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"a.ini", "b.ini"}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, []string{"a.ini", "b.ini"}, cfg.Files)
	assert.Empty(t, cfg.Command)
	assert.True(t, cfg.PrintMode, "no command means print mode")
	assert.Equal(t, 1, cfg.Jobs)
	assert.Equal(t, -1, cfg.Choose)
	assert.True(t, cfg.InsertName)
	assert.True(t, cfg.ExportName)
	assert.False(t, cfg.Strict)
	assert.Equal(t, ", ", cfg.Delimiter)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParse_CommandSplit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{"a.ini", "b.ini", "--", "echo", "{}", "--not-a-flag"}, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ini", "b.ini"}, cfg.Files)
	assert.Equal(t, []string{"echo", "{}", "--not-a-flag"}, cfg.Command)
	assert.False(t, cfg.PrintMode)
}

func TestParse_Jobs(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"--jobs=4", "a.ini", "--", "true"}, out)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Jobs)

	cfg, _, err = Parse([]string{"--jobs", "a.ini", "--", "true"}, out)
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), cfg.Jobs)

	for _, bad := range []string{"--jobs=0", "--jobs=-2", "--jobs=many"} {
		_, _, err = Parse([]string{bad, "a.ini", "--", "true"}, out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr, bad)
		assert.Equal(t, 2, exitErr.Code)
	}
}

func TestParse_ChooseAndExclude(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"--choose=5", "a.ini"}, out)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Choose)

	cfg, _, err = Parse([]string{"-x", "1", "--exclude=3", "a.ini"}, out)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, cfg.Excludes)

	_, _, err = Parse([]string{"--choose=1", "--exclude=2", "a.ini"}, out)
	assert.Error(t, err)

	_, _, err = Parse([]string{"--choose=-1", "a.ini"}, out)
	assert.Error(t, err)
}

func TestParse_PrintFlags(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"--print", "a.ini"}, out)
	require.NoError(t, err)
	assert.True(t, cfg.PrintMode)
	assert.Equal(t, "{}", cfg.PrintTemplate)
	assert.False(t, cfg.Print0)

	cfg, _, err = Parse([]string{"--print=<{}>", "a.ini"}, out)
	require.NoError(t, err)
	assert.Equal(t, "<{}>", cfg.PrintTemplate)

	cfg, _, err = Parse([]string{"--print0", "a.ini"}, out)
	require.NoError(t, err)
	assert.True(t, cfg.Print0)

	_, _, err = Parse([]string{"--print", "--print0", "a.ini"}, out)
	assert.Error(t, err)

	_, _, err = Parse([]string{"--print", "a.ini", "--", "echo"}, out)
	assert.Error(t, err)
}

func TestParse_ExecOnlyFlagsRequireCommand(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	for _, flag := range []string{"--keep-going", "--ignore-env", "--no-insert-name", "--no-export-name"} {
		_, _, err := Parse([]string{flag, "a.ini"}, out)
		assert.Error(t, err, flag)

		_, _, err = Parse([]string{flag, "a.ini", "--", "true"}, out)
		assert.NoError(t, err, flag)
	}
}

func TestParse_NoFiles(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{}, out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_QuietForcesErrorLevel(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{"-q", "a.ini"}, out)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"--help"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_UnknownFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"--this-is-not-a-valid-flag", "a.ini"}, out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
