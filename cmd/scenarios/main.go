package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/scenarios/internal/app"
	"github.com/vk/scenarios/internal/cli"
)

// main is the entrypoint for the scenarios tool.
func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "scenarios: "+err.Error())
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and
// error handling. Scenario output goes to outW, diagnostics to errW.
func run(outW, errW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}
	return app.New(outW, errW, cfg).Run(context.Background())
}
