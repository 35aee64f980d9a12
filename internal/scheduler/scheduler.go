// Package scheduler dispatches merged scenarios to a bounded pool of
// concurrent launches and reports their outcomes in sequence order.
package scheduler

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/vk/scenarios/internal/ctxlog"
	"github.com/vk/scenarios/internal/space"
)

// Policy decides what happens after a scenario fails.
type Policy int

const (
	// FailFast stops admitting new scenarios after the first failure.
	// Launches already in flight are allowed to finish.
	FailFast Policy = iota
	// KeepGoing dispatches every scenario regardless of failures.
	KeepGoing
)

func (p Policy) String() string {
	if p == KeepGoing {
		return "keep-going"
	}
	return "fail-fast"
}

// Launcher runs one external command for one merged scenario and blocks
// until it exits. A non-nil error means the launch failed to start or
// the command exited unsuccessfully.
type Launcher interface {
	Launch(ctx context.Context, m space.Merged) error
}

// Outcome is the result of one scenario's launch.
type Outcome struct {
	Name        string
	LinearIndex int
	Err         error
}

// Success reports whether the launch succeeded.
func (o Outcome) Success() bool { return o.Err == nil }

// Aggregate summarizes one scheduler run.
type Aggregate struct {
	Dispatched   int
	Failed       int
	FirstFailure *Outcome
	Success      bool
}

// Config holds everything a scheduler run needs. All fields are supplied
// by the caller; the scheduler itself keeps no state between runs.
type Config struct {
	// Concurrency is the maximum number of simultaneously in-flight
	// launches. Values below 1 are treated as 1.
	Concurrency int
	Policy      Policy
	Launcher    Launcher
	// OnOutcome receives outcomes in admission order, regardless of
	// completion order. May be nil.
	OnOutcome func(Outcome)
}

// Scheduler drives bounded concurrent launches over a scenario sequence.
// Construct one per run and discard it afterwards.
type Scheduler struct {
	cfg Config
}

// New returns a scheduler for the given configuration.
func New(cfg Config) *Scheduler {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Scheduler{cfg: cfg}
}

// result pairs an outcome with its admission sequence number. The
// sequence number, not the linear index, drives the ordered drain: with
// exclusions the linear indices are not contiguous.
type result struct {
	seq int
	out Outcome
}

// Run admits scenarios from the sequence in order, keeping at most
// Concurrency launches in flight, and blocks until everything admitted
// has finished and been reported. A non-nil error from the sequence
// itself (a strict merge conflict) stops admission, drains in-flight
// launches, and is returned; it is not an outcome.
func (s *Scheduler) Run(ctx context.Context, scenarios iter.Seq2[space.Merged, error]) (Aggregate, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scheduler run starting.", "concurrency", s.cfg.Concurrency, "policy", s.cfg.Policy.String())

	// One slot per allowed in-flight launch.
	slots := make(chan struct{}, s.cfg.Concurrency)
	results := make(chan result)
	var failed atomic.Bool
	var wg sync.WaitGroup

	// The collector owns the outcome buffer and releases outcomes to
	// OnOutcome in admission order.
	agg := &Aggregate{}
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		s.collect(results, agg)
	}()

	var fatal error
	dispatched := 0
admission:
	for m, err := range scenarios {
		if err != nil {
			fatal = err
			break
		}
		if s.cfg.Policy == FailFast && failed.Load() {
			break
		}
		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			fatal = ctx.Err()
			break admission
		}
		// A failure may have been recorded while we waited for a slot.
		if s.cfg.Policy == FailFast && failed.Load() {
			<-slots
			break
		}
		wg.Add(1)
		seq := dispatched
		dispatched++
		go func(m space.Merged) {
			defer wg.Done()
			err := s.cfg.Launcher.Launch(ctx, m)
			if err != nil {
				// Record the failure before freeing the slot so the
				// admission loop observes it as soon as it can admit
				// again.
				failed.Store(true)
			}
			results <- result{seq: seq, out: Outcome{Name: m.Name, LinearIndex: m.LinearIndex, Err: err}}
			<-slots
		}(m)
	}

	if failed.Load() && s.cfg.Policy == FailFast {
		logger.Info("Failure detected, waiting for unfinished launches.")
	}
	wg.Wait()
	close(results)
	<-collectorDone

	agg.Dispatched = dispatched
	agg.Success = fatal == nil && agg.Failed == 0
	logger.Debug("Scheduler run finished.", "dispatched", agg.Dispatched, "failed", agg.Failed)
	return *agg, fatal
}

// RunOne dispatches exactly one merged scenario, bypassing the pool.
func (s *Scheduler) RunOne(ctx context.Context, m space.Merged) Aggregate {
	out := Outcome{Name: m.Name, LinearIndex: m.LinearIndex, Err: s.cfg.Launcher.Launch(ctx, m)}
	if s.cfg.OnOutcome != nil {
		s.cfg.OnOutcome(out)
	}
	agg := Aggregate{Dispatched: 1, Success: out.Success()}
	if !out.Success() {
		agg.Failed = 1
		agg.FirstFailure = &out
	}
	return agg
}

// collect buffers out-of-order completions and releases each outcome
// only once every lower-numbered outcome has been released. Admission
// numbers are contiguous from 0, so the buffer drains completely.
func (s *Scheduler) collect(results <-chan result, agg *Aggregate) {
	pending := make(map[int]Outcome)
	next := 0
	for r := range results {
		pending[r.seq] = r.out
		for {
			out, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if !out.Success() {
				agg.Failed++
				if agg.FirstFailure == nil {
					o := out
					agg.FirstFailure = &o
				}
			}
			if s.cfg.OnOutcome != nil {
				s.cfg.OnOutcome(out)
			}
		}
	}
}
