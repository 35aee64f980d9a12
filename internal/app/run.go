package app

import (
	"context"
	"fmt"

	"github.com/vk/scenarios/internal/ctxlog"
	"github.com/vk/scenarios/internal/launcher"
	"github.com/vk/scenarios/internal/printer"
	"github.com/vk/scenarios/internal/scenario"
	"github.com/vk/scenarios/internal/scenfile"
	"github.com/vk/scenarios/internal/scheduler"
	"github.com/vk/scenarios/internal/space"
)

// Run executes one invocation: load the scenario files, build the
// combination space, then either print the merged names or dispatch the
// command for every combination.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	axes, err := a.loadAxes()
	if err != nil {
		return err
	}
	sp := space.New(axes, scenario.MergeOptions{
		Delimiter: a.cfg.Delimiter,
		Strict:    a.cfg.Strict,
	})
	a.logger.Debug("Combination space built.", "axes", len(axes), "total", sp.Size())

	if a.cfg.PrintMode {
		return a.runPrint(sp)
	}
	return a.runExec(ctx, sp)
}

func (a *App) loadAxes() ([]space.Axis, error) {
	axes := make([]space.Axis, 0, len(a.cfg.Files))
	for _, path := range a.cfg.Files {
		f, err := scenfile.Load(path)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("Scenario file loaded.", "file", f.Name, "scenarios", len(f.Scenarios))
		axes = append(axes, space.Axis{Source: f.Name, Scenarios: f.Scenarios})
	}
	return axes, nil
}

func (a *App) exclusions() map[int]struct{} {
	if len(a.cfg.Excludes) == 0 {
		return nil
	}
	excl := make(map[int]struct{}, len(a.cfg.Excludes))
	for _, i := range a.cfg.Excludes {
		excl[i] = struct{}{}
	}
	return excl
}

func (a *App) runPrint(sp *space.Space) error {
	terminator := "\n"
	if a.cfg.Print0 {
		terminator = "\x00"
	}
	p := printer.New(a.outW, a.cfg.PrintTemplate, terminator)

	if a.cfg.Choose >= 0 {
		m, err := sp.At(a.cfg.Choose)
		if err != nil {
			return err
		}
		return p.Print(m.Name)
	}
	for m, err := range sp.WithExclusions(a.exclusions()) {
		if err != nil {
			return err
		}
		if err := p.Print(m.Name); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) runExec(ctx context.Context, sp *space.Space) error {
	cl, err := launcher.New(a.cfg.Command, launcher.Options{
		IgnoreEnv:  a.cfg.IgnoreEnv,
		InsertName: a.cfg.InsertName,
		ExportName: a.cfg.ExportName,
		Strict:     a.cfg.Strict,
	})
	if err != nil {
		return err
	}
	cl.Stdout = a.outW
	cl.Stderr = a.errW

	policy := scheduler.FailFast
	if a.cfg.KeepGoing {
		policy = scheduler.KeepGoing
	}
	sched := scheduler.New(scheduler.Config{
		Concurrency: a.cfg.Jobs,
		Policy:      policy,
		Launcher:    cl,
		OnOutcome:   a.reportOutcome,
	})

	var agg scheduler.Aggregate
	if a.cfg.Choose >= 0 {
		// An invalid index aborts before anything is dispatched.
		m, err := sp.At(a.cfg.Choose)
		if err != nil {
			return err
		}
		agg = sched.RunOne(ctx, m)
	} else {
		agg, err = sched.Run(ctx, sp.WithExclusions(a.exclusions()))
		if err != nil {
			return err
		}
	}

	if !agg.Success {
		return fmt.Errorf("%d of %d scenarios failed", agg.Failed, agg.Dispatched)
	}
	if agg.Dispatched == 0 {
		a.logger.Info("No combinations to run.")
	}
	return nil
}

func (a *App) reportOutcome(o scheduler.Outcome) {
	if o.Success() {
		a.logger.Debug("Scenario finished.", "scenario", o.Name, "index", o.LinearIndex)
		return
	}
	a.logger.Error("Scenario failed.", "scenario", o.Name, "index", o.LinearIndex, "error", o.Err)
}
