package search

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig reports an unusable engine configuration. It is fatal and
// surfaced immediately; nothing here is retried.
var ErrInvalidConfig = errors.New("invalid search configuration")

// Config is the tunable surface of the consensus engine.
type Config struct {
	// MaxIterations bounds the refinement loop.
	MaxIterations int

	// ConfidenceThreshold is the early-accept gate in [0,1].
	ConfidenceThreshold float64

	// StrategyTimeout bounds each strategy independently.
	StrategyTimeout time.Duration

	// OverallDeadline bounds one executor fan-out. Must be at least
	// StrategyTimeout.
	OverallDeadline time.Duration

	// Weights is the per-strategy fusion bias. Empty means the default
	// keyword-biased table.
	Weights map[Strategy]float64

	// VectorScoreThreshold drops vector hits below this cosine similarity.
	VectorScoreThreshold float32

	// MaxResults caps the ranked list each strategy and the fused output
	// return.
	MaxResults int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	weights := make(map[Strategy]float64, len(defaultWeights))
	for s, w := range defaultWeights {
		weights[s] = w
	}
	return Config{
		MaxIterations:        3,
		ConfidenceThreshold:  0.8,
		StrategyTimeout:      2 * time.Second,
		OverallDeadline:      5 * time.Second,
		Weights:              weights,
		VectorScoreThreshold: 0.25,
		MaxResults:           10,
	}
}

// Validate checks the configuration, returning ErrInvalidConfig wrapped with
// the specific problem.
func (c Config) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: confidence threshold must be in [0,1], got %g", ErrInvalidConfig, c.ConfidenceThreshold)
	}
	if c.StrategyTimeout <= 0 {
		return fmt.Errorf("%w: strategy timeout must be positive, got %s", ErrInvalidConfig, c.StrategyTimeout)
	}
	if c.OverallDeadline < c.StrategyTimeout {
		return fmt.Errorf("%w: overall deadline %s is shorter than strategy timeout %s", ErrInvalidConfig, c.OverallDeadline, c.StrategyTimeout)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("%w: max results must be at least 1, got %d", ErrInvalidConfig, c.MaxResults)
	}
	for s, w := range c.Weights {
		if _, err := ParseStrategy(string(s)); err != nil {
			return err
		}
		if w < 0 {
			return fmt.Errorf("%w: weight for %s must be non-negative, got %g", ErrInvalidConfig, s, w)
		}
	}
	return nil
}

// weightFor returns the configured weight for a strategy, falling back to the
// default table when the strategy is absent from the configured map.
func (c Config) weightFor(s Strategy) float64 {
	if w, ok := c.Weights[s]; ok {
		return w
	}
	return defaultWeights[s]
}
