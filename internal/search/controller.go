package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/embeddings"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
)

// Response is the bundle handed to result consumers (MCP adapter, HTTP API).
type Response struct {
	Results     []ConsensusResult `json:"results"`
	Confidence  float64           `json:"confidence"`
	Iterations  int               `json:"iterations"`
	ResultCount int               `json:"resultCount"`
}

// Engine drives the full consensus search: classify, fan out, fuse, and
// iterate under the confidence gate. One Engine serves all queries; each
// Search call reads whichever index generation is published when it starts
// an iteration.
type Engine struct {
	idx      *index.Index
	embedder embeddings.Embedder
	cfg      Config
	executor *Executor
	logger   *zap.Logger

	// Seams for tests.
	now        func() time.Time
	runnersFor func(snap *index.Snapshot, selected map[Strategy]float64) []Runner
	confidence func(results []ConsensusResult, query string, snap *index.Snapshot) float64
}

// NewEngine validates cfg and creates an Engine. Configuration problems are
// fatal here, never retried downstream.
func NewEngine(idx *index.Index, embedder embeddings.Embedder, cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		idx:        idx,
		embedder:   embedder,
		cfg:        cfg,
		executor:   NewExecutor(cfg.StrategyTimeout, cfg.OverallDeadline, logger),
		logger:     logger,
		now:        time.Now,
		confidence: Confidence,
	}
	e.runnersFor = e.buildRunners
	return e, nil
}

// Search runs the iterative loop: execute the strategies, evaluate
// confidence, and either accept or refine the query and go again. Both exits
// return the best consensus list seen across all iterations, so the reported
// answer quality never regresses even when a refinement does. Running out of
// iterations is a normal low-confidence answer, not an error.
func (e *Engine) Search(ctx context.Context, query string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		best           []ConsensusResult
		bestConfidence float64
		iterations     int
	)
	current := query

	for iter := 1; iter <= e.cfg.MaxIterations; iter++ {
		iterations = iter

		results, conf := e.runIteration(ctx, current)
		if conf > bestConfidence || best == nil {
			best = results
			bestConfidence = conf
		}

		e.logger.Debug("search iteration evaluated",
			zap.Int("iteration", iter),
			zap.String("query", current),
			zap.Float64("confidence", conf),
			zap.Int("results", len(results)),
		)

		if conf >= e.cfg.ConfidenceThreshold {
			return e.respond(best, bestConfidence, iterations), nil
		}
		current = Refine(current)
	}

	// Out of iterations without clearing the gate.
	return e.respond(best, bestConfidence, iterations), nil
}

// runIteration classifies, executes, and fuses one query text.
func (e *Engine) runIteration(ctx context.Context, query string) ([]ConsensusResult, float64) {
	snap, err := e.idx.Current()
	if err != nil {
		// No published generation: every strategy degrades to "not
		// selected" and the iteration reports nothing.
		e.logger.Warn("search iteration without index", zap.Error(err))
		return nil, 0
	}

	classification := Classify(query)
	selected := SelectStrategies(classification, e.cfg)
	q := Query{Text: query, Classification: classification}

	outcomes := e.executor.Execute(ctx, e.runnersFor(snap, selected), q)
	results := Fuse(outcomes, selected, snap)
	if len(results) > e.cfg.MaxResults {
		results = results[:e.cfg.MaxResults]
	}
	return results, e.confidence(results, query, snap)
}

// buildRunners instantiates the selected strategies against one snapshot
// generation.
func (e *Engine) buildRunners(snap *index.Snapshot, selected map[Strategy]float64) []Runner {
	var runners []Runner
	for _, s := range AllStrategies {
		if _, ok := selected[s]; !ok {
			continue
		}
		switch s {
		case StrategyFastKeyword:
			runners = append(runners, NewKeywordStrategy(snap, e.cfg.MaxResults*2))
		case StrategyVectorSemantic:
			runners = append(runners, NewVectorStrategy(snap, e.embedder, e.cfg.MaxResults*2, e.cfg.VectorScoreThreshold, e.logger))
		case StrategyContextFilter:
			runners = append(runners, NewContextFilterStrategy(snap, e.cfg.MaxResults*2))
		case StrategyRecency:
			runners = append(runners, NewRecencyStrategy(snap, e.now(), e.cfg.MaxResults*2))
		}
	}
	return runners
}

func (e *Engine) respond(results []ConsensusResult, confidence float64, iterations int) *Response {
	if results == nil {
		results = []ConsensusResult{}
	}
	return &Response{
		Results:     results,
		Confidence:  confidence,
		Iterations:  iterations,
		ResultCount: len(results),
	}
}

// String implements fmt.Stringer for logging.
func (r *Response) String() string {
	return fmt.Sprintf("results=%d confidence=%.2f iterations=%d", r.ResultCount, r.Confidence, r.Iterations)
}
