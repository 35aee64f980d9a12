// Package launcher builds and runs the external command for one merged
// scenario: argv placeholder substitution, child environment assembly,
// and process spawning via os/exec.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/vk/scenarios/internal/space"
)

// ScenariosNameVar is the environment variable injected into every child
// process to carry the merged scenario name.
const ScenariosNameVar = "SCENARIOS_NAME"

// namePlaceholder is the argv token replaced by the scenario name.
const namePlaceholder = "{}"

// ErrEmptyCommand is returned when no command was supplied.
var ErrEmptyCommand = errors.New("empty command line")

// ErrReservedVariable is returned in strict mode when a scenario defines
// SCENARIOS_NAME itself while export-name is enabled.
var ErrReservedVariable = errors.New("bad variable name: " + ScenariosNameVar)

// ExitError reports a child process that ran but exited unsuccessfully.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

// Options customize how child processes are created.
type Options struct {
	// IgnoreEnv starts children in a clean environment containing only
	// the scenario's variables instead of inheriting the parent's.
	IgnoreEnv bool
	// InsertName replaces "{}" tokens in the command arguments with the
	// scenario name.
	InsertName bool
	// ExportName defines SCENARIOS_NAME in the child environment.
	ExportName bool
	// Strict makes a scenario-defined SCENARIOS_NAME an error when
	// ExportName is set; otherwise it is silently overwritten.
	Strict bool
}

// DefaultOptions match the command-line defaults.
func DefaultOptions() Options {
	return Options{InsertName: true, ExportName: true}
}

// CommandLine launches one external command per merged scenario. It is
// safe for concurrent use; every launch assembles its own argv and
// environment.
type CommandLine struct {
	argv []string
	opts Options

	// Stdout and Stderr are handed to every child. They default to the
	// parent's streams.
	Stdout io.Writer
	Stderr io.Writer
}

// New wraps a command line. The first element is the program, the rest
// its arguments.
func New(argv []string, opts Options) (*CommandLine, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return &CommandLine{argv: argv, opts: opts, Stdout: os.Stdout, Stderr: os.Stderr}, nil
}

// Launch runs the command for one merged scenario and blocks until it
// exits. A started child is never killed: the context is only checked
// before spawning.
func (c *CommandLine) Launch(ctx context.Context, m space.Merged) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env, err := c.buildEnv(m)
	if err != nil {
		return err
	}
	cmd := exec.Command(c.argv[0], c.buildArgs(m.Name)...)
	cmd.Env = env
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %q: %w", c.argv[0], err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("waiting for %q: %w", c.argv[0], err)
	}
	return nil
}

// buildArgs returns the argument list with placeholder substitution
// applied. The program itself is never substituted.
func (c *CommandLine) buildArgs(name string) []string {
	args := make([]string, len(c.argv)-1)
	for i, arg := range c.argv[1:] {
		if c.opts.InsertName {
			arg = strings.ReplaceAll(arg, namePlaceholder, name)
		}
		args[i] = arg
	}
	return args
}

// buildEnv assembles a fresh environment block for one launch.
func (c *CommandLine) buildEnv(m space.Merged) ([]string, error) {
	var env []string
	if !c.opts.IgnoreEnv {
		env = os.Environ()
	}
	for _, v := range m.Vars {
		if v.Key == ScenariosNameVar && c.opts.ExportName {
			if c.opts.Strict {
				return nil, ErrReservedVariable
			}
			// Lax mode: the injected name below wins.
			continue
		}
		env = append(env, v.Key+"="+v.Value)
	}
	if c.opts.ExportName {
		env = append(env, ScenariosNameVar+"="+m.Name)
	}
	return env, nil
}
