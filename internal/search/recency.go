package search

import (
	"context"
	"sort"
	"time"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
)

// recencyHalfLife is the age at which a lifelog's recency score decays to
// one half.
const recencyHalfLife = 7 * 24 * time.Hour

// RecencyStrategy scores every lifelog by freshness alone. It only runs for
// temporal query profiles, where "latest first" is a real relevance signal;
// elsewhere it would be pure noise.
type RecencyStrategy struct {
	snap       *index.Snapshot
	now        time.Time
	maxResults int
}

// NewRecencyStrategy creates a recency strategy bound to one snapshot
// generation. now is injected for deterministic tests.
func NewRecencyStrategy(snap *index.Snapshot, now time.Time, maxResults int) *RecencyStrategy {
	return &RecencyStrategy{snap: snap, now: now, maxResults: maxResults}
}

func (r *RecencyStrategy) Name() Strategy {
	return StrategyRecency
}

func (r *RecencyStrategy) Run(_ context.Context, q Query) ([]Result, error) {
	if !q.Classification.HasTemporal {
		return nil, nil
	}

	results := make([]Result, 0, len(r.snap.Docs))
	for id, doc := range r.snap.Docs {
		age := r.now.Sub(doc.StartTime)
		if age < 0 {
			age = 0
		}
		score := clamp01(float64(recencyHalfLife) / float64(recencyHalfLife+age))
		results = append(results, Result{DocID: id, Score: score, Strategy: StrategyRecency})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})
	if len(results) > r.maxResults {
		results = results[:r.maxResults]
	}
	return results, nil
}
