// Package app wires scenario files, the combination space, and the
// scheduler together into one run of the tool.
package app

import (
	"io"
	"log/slog"
)

// App encapsulates one invocation's dependencies and configuration.
// Scenario output (print mode) goes to outW; logs go to errW.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	cfg    *Config
}

// New is the constructor for the application. It returns a fully
// initialized App instance with its own isolated logger.
func New(outW, errW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		errW:   errW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, errW),
		cfg:    cfg,
	}
}
