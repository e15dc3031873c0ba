package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// OutcomeStatus tags how one strategy's execution ended.
type OutcomeStatus int

const (
	OutcomeSuccess OutcomeStatus = iota
	OutcomeTimeout
	OutcomeError
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSuccess:
		return "success"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// Outcome is one strategy's tagged result. Only OutcomeSuccess outcomes ever
// reach fusion; timeouts and errors are logged and dropped.
type Outcome struct {
	Status  OutcomeStatus
	Results []Result
	Err     error
}

// Executor fans a query out to the selected strategies concurrently. Each
// strategy is bounded by its own timeout; the whole fan-out is bounded by an
// overall deadline. A slow or broken strategy degrades ranking quality,
// never availability.
type Executor struct {
	strategyTimeout time.Duration
	overallDeadline time.Duration
	logger          *zap.Logger
}

// NewExecutor creates an executor with the given concurrency bounds.
func NewExecutor(strategyTimeout, overallDeadline time.Duration, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		strategyTimeout: strategyTimeout,
		overallDeadline: overallDeadline,
		logger:          logger,
	}
}

type strategyDone struct {
	name    Strategy
	outcome Outcome
}

// Execute runs every runner concurrently and collects tagged outcomes. The
// supervising call owns cancellation for the whole fan-out: when the overall
// deadline fires, strategies still in flight are abandoned and recorded as
// timeouts, and whatever completed is returned. Partial output of an
// abandoned strategy is never blended in.
func (e *Executor) Execute(ctx context.Context, runners []Runner, q Query) map[Strategy]Outcome {
	outcomes := make(map[Strategy]Outcome, len(runners))
	if len(runners) == 0 {
		return outcomes
	}

	ctx, cancel := context.WithTimeout(ctx, e.overallDeadline)
	defer cancel()

	done := make(chan strategyDone, len(runners))
	for _, r := range runners {
		go e.runOne(ctx, r, q, done)
	}

	pending := len(runners)
	for pending > 0 {
		select {
		case d := <-done:
			outcomes[d.name] = d.outcome
			pending--
		case <-ctx.Done():
			// Overall deadline: everything not yet reported is abandoned.
			for _, r := range runners {
				if _, ok := outcomes[r.Name()]; !ok {
					outcomes[r.Name()] = Outcome{Status: OutcomeTimeout, Err: ctx.Err()}
					e.logger.Warn("strategy abandoned at overall deadline", zap.String("strategy", string(r.Name())))
				}
			}
			return outcomes
		}
	}
	return outcomes
}

// runOne executes a single strategy under its own timeout. The runner's work
// happens in a nested goroutine so a runner that ignores its context still
// gets recorded as a timeout; being side-effect-free, its abandoned work is
// discarded harmlessly when it eventually returns.
func (e *Executor) runOne(ctx context.Context, r Runner, q Query, done chan<- strategyDone) {
	ctx, cancel := context.WithTimeout(ctx, e.strategyTimeout)
	defer cancel()

	type runResult struct {
		results []Result
		err     error
	}
	out := make(chan runResult, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				out <- runResult{err: fmt.Errorf("strategy panicked: %v", p)}
			}
		}()
		results, err := r.Run(ctx, q)
		out <- runResult{results: results, err: err}
	}()

	select {
	case res := <-out:
		if res.err != nil {
			e.logger.Warn("strategy failed",
				zap.String("strategy", string(r.Name())),
				zap.Error(res.err),
			)
			done <- strategyDone{name: r.Name(), outcome: Outcome{Status: OutcomeError, Err: res.err}}
			return
		}
		done <- strategyDone{name: r.Name(), outcome: Outcome{Status: OutcomeSuccess, Results: res.results}}
	case <-ctx.Done():
		e.logger.Warn("strategy timed out",
			zap.String("strategy", string(r.Name())),
			zap.Duration("timeout", e.strategyTimeout),
		)
		done <- strategyDone{name: r.Name(), outcome: Outcome{Status: OutcomeTimeout, Err: ctx.Err()}}
	}
}
