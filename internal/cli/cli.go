// Package cli turns command-line arguments into a validated app.Config.
package cli

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vk/scenarios/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `scenarios takes one or more scenario files, each holding a list of named
environment-variable sets, and runs a command once per combination of
scenarios drawn one from each file. The first file varies slowest.

A scenario file looks like:

    [First scenario name]
    FIRST_VARIABLE = value
    SECOND_VARIABLE = value

    [Second scenario name]
    FIRST_VARIABLE = value

Files ending in .hcl or .yaml/.yml use the equivalent HCL or YAML form.
Pass '-' to read scenarios from stdin.

Without a command, the merged scenario names are printed instead. When a
command runs, the variable SCENARIOS_NAME carries the merged name, and a
bare {} in the command's arguments is replaced by it.`

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating the program should exit cleanly (help
// was shown), or an ExitError for usage mistakes.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	var (
		cfg      *app.Config
		jobs     string
		print    string
		print0   string
		choose   int
		excludes []int
		keepGo   bool
		noInsert bool
		noExport bool
		ignore   bool
		strict   bool
		delim    string
		quiet    bool
		logLevel string
		logFmt   string
	)

	cmd := &cobra.Command{
		Use:           "scenarios [flags] FILE... [-- COMMAND [ARG...]]",
		Short:         "Run a command once per combination of environment-variable sets.",
		Long:          longHelp,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.Flags()
	f.StringVarP(&jobs, "jobs", "j", "1", "number of commands to run in parallel; bare --jobs means the CPU count")
	f.Lookup("jobs").NoOptDefVal = "auto"
	f.BoolVarP(&keepGo, "keep-going", "k", false, "don't stop after a command fails")
	f.IntVarP(&choose, "choose", "c", -1, "run only the combination with this index")
	f.IntSliceVarP(&excludes, "exclude", "x", nil, "skip the combination with this index (repeatable)")
	f.StringVar(&print, "print", "", "print each combination's name through TEMPLATE instead of executing; {} is the name")
	f.Lookup("print").NoOptDefVal = "{}"
	f.StringVar(&print0, "print0", "", "like --print, but separate names with a null byte")
	f.Lookup("print0").NoOptDefVal = "{}"
	f.BoolVar(&noInsert, "no-insert-name", false, "don't replace {} in COMMAND with the scenario name")
	f.BoolVar(&noExport, "no-export-name", false, "don't export SCENARIOS_NAME to COMMAND")
	f.BoolVarP(&ignore, "ignore-env", "I", false, "don't export the current environment to COMMAND")
	f.BoolVarP(&strict, "strict", "s", false, "error on conflicting variable definitions between files")
	f.StringVarP(&delim, "delimiter", "d", ", ", "delimiter between scenario names in the merged name")
	f.BoolVarP(&quiet, "quiet", "q", false, "suppress information during execution")
	f.StringVar(&logLevel, "log-level", "info", "logging level: debug, info, warn, or error")
	f.StringVar(&logFmt, "log-format", "text", "log output format: text or json")

	cmd.RunE = func(cmd *cobra.Command, argv []string) error {
		files, command := argv, []string(nil)
		if at := cmd.ArgsLenAtDash(); at >= 0 {
			files, command = argv[:at], argv[at:]
		}

		printMode := f.Changed("print") || f.Changed("print0")
		if printMode && len(command) > 0 {
			return errors.New("--print/--print0 cannot be combined with a command")
		}
		if f.Changed("print") && f.Changed("print0") {
			return errors.New("--print and --print0 are mutually exclusive")
		}
		if f.Changed("choose") && len(excludes) > 0 {
			return errors.New("--choose and --exclude are mutually exclusive")
		}
		if f.Changed("choose") && choose < 0 {
			return fmt.Errorf("--choose index must be non-negative, got %d", choose)
		}
		if len(command) == 0 {
			for _, name := range []string{"keep-going", "ignore-env", "no-insert-name", "no-export-name"} {
				if f.Changed(name) {
					return fmt.Errorf("--%s requires a command", name)
				}
			}
		}

		jobCount, err := parseJobs(jobs)
		if err != nil {
			return err
		}

		switch logLevel {
		case "debug", "info", "warn", "error":
		default:
			return errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
		}
		if logFmt != "text" && logFmt != "json" {
			return errors.New("invalid log-format: must be 'text' or 'json'")
		}
		if quiet {
			logLevel = "error"
		}

		template := print
		if f.Changed("print0") {
			template = print0
		}

		cfg, err = app.NewConfig(app.Config{
			Files:         files,
			Command:       command,
			Jobs:          jobCount,
			KeepGoing:     keepGo,
			Choose:        chooseOrUnset(f.Changed("choose"), choose),
			Excludes:      excludes,
			PrintMode:     printMode || len(command) == 0,
			PrintTemplate: template,
			Print0:        f.Changed("print0"),
			InsertName:    !noInsert,
			ExportName:    !noExport,
			IgnoreEnv:     ignore,
			Strict:        strict,
			Delimiter:     delim,
			LogLevel:      logLevel,
			LogFormat:     logFmt,
		})
		return err
	}

	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)
	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: "scenarios: " + err.Error()}
	}
	if cfg == nil {
		// RunE never ran: help was requested.
		return nil, true, nil
	}
	return cfg, false, nil
}

func parseJobs(s string) (int, error) {
	if s == "auto" {
		return runtime.NumCPU(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid --jobs value: %q", s)
	}
	return n, nil
}

func chooseOrUnset(changed bool, choose int) int {
	if !changed {
		return -1
	}
	return choose
}
