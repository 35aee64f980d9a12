package app

import "errors"

// Config holds everything one invocation needs to run. It is populated
// by the cli package and validated once, up front.
type Config struct {
	// Files are the scenario-file paths, in axis order. "-" means stdin.
	Files []string
	// Command is the external command and its arguments. Empty means
	// print mode.
	Command []string

	// Jobs is the resolved concurrency (>= 1; "auto" is resolved by the
	// cli layer).
	Jobs      int
	KeepGoing bool

	// Choose selects exactly one combination by linear index; -1 means
	// not set.
	Choose int
	// Excludes are linear indices removed from enumeration.
	Excludes []int

	PrintMode     bool
	PrintTemplate string
	Print0        bool

	InsertName bool
	ExportName bool
	IgnoreEnv  bool
	Strict     bool
	Delimiter  string

	LogLevel  string
	LogFormat string
}

// NewConfig validates a populated Config.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Files) == 0 {
		return nil, errors.New("no scenario files given")
	}
	if cfg.Jobs < 1 {
		return nil, errors.New("jobs must be at least 1")
	}
	return &cfg, nil
}
