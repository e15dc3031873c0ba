// Package search implements the multi-strategy consensus engine: query
// classification, parallel strategy execution with partial-failure tolerance,
// strategy-weighted fusion, and the confidence-gated refinement loop.
package search

import (
	"context"
	"fmt"
)

// Strategy is the closed set of retrieval strategies. Weight lookups go
// through this type so a typo in configuration fails loudly instead of
// silently dropping a strategy.
type Strategy string

const (
	StrategyFastKeyword    Strategy = "fast-keyword"
	StrategyVectorSemantic Strategy = "vector-semantic"
	StrategyContextFilter  Strategy = "context-aware-filter"
	StrategyRecency        Strategy = "recency"
)

// AllStrategies lists every strategy in fixed order. Fusion iterates this
// slice, never a map, so output ordering is deterministic.
var AllStrategies = []Strategy{
	StrategyFastKeyword,
	StrategyVectorSemantic,
	StrategyContextFilter,
	StrategyRecency,
}

// ParseStrategy converts a configuration string into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(name)
	for _, known := range AllStrategies {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, name)
}

// Family groups strategies by the kind of signal they produce. Confidence
// scoring treats agreement across families as stronger evidence than
// agreement within one.
type Family int

const (
	FamilyKeyword Family = iota
	FamilySemantic
	FamilyFilter
)

// Family returns the signal family of a strategy.
func (s Strategy) Family() Family {
	switch s {
	case StrategyFastKeyword:
		return FamilyKeyword
	case StrategyVectorSemantic:
		return FamilySemantic
	default:
		return FamilyFilter
	}
}

// defaultWeights is the keyword-biased fusion bias. The asymmetry is load
// bearing: a document surfaced only by the soft context filter must rank
// below one with direct keyword corroboration at equal raw score, so the
// filter weight stays well under the keyword weight.
var defaultWeights = map[Strategy]float64{
	StrategyFastKeyword:    1.0,
	StrategyVectorSemantic: 0.75,
	StrategyContextFilter:  0.3,
	StrategyRecency:        0.4,
}

// Result is one scored candidate from one strategy. Score is in [0,1].
type Result struct {
	DocID    string
	Score    float64
	Strategy Strategy
}

// Runner executes one retrieval strategy against the current index snapshot.
// Runners are side-effect-free: they read the snapshot and emit results.
type Runner interface {
	Name() Strategy
	Run(ctx context.Context, q Query) ([]Result, error)
}
