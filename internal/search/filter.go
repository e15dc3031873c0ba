package search

import (
	"context"
	"sort"
	"strings"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
)

// Contribution of each matched context feature to a chunk's filter score.
// The strategy is a soft corroborating signal; its fusion weight keeps it
// from outranking direct keyword evidence on its own.
const (
	clockTimeMatch = 0.5
	timeTagMatch   = 0.35
	entityMatch    = 0.4
)

// ContextFilterStrategy scores lifelogs by how well their chunks' extracted
// temporal tags and entity mentions line up with the query's features. It
// surfaces nothing for queries without temporal or entity features.
type ContextFilterStrategy struct {
	snap       *index.Snapshot
	maxResults int
}

// NewContextFilterStrategy creates a context filter bound to one snapshot
// generation.
func NewContextFilterStrategy(snap *index.Snapshot, maxResults int) *ContextFilterStrategy {
	return &ContextFilterStrategy{snap: snap, maxResults: maxResults}
}

func (f *ContextFilterStrategy) Name() Strategy {
	return StrategyContextFilter
}

func (f *ContextFilterStrategy) Run(_ context.Context, q Query) ([]Result, error) {
	c := q.Classification
	if !c.HasTemporal && !c.HasEntity {
		return nil, nil
	}

	queryTags := normalizeSet(c.TimeWords)
	queryClocks := normalizeSet(c.ClockTimes)
	queryEntities := normalizeSet(c.Entities)

	best := make(map[string]float64)
	for _, chunk := range f.snap.Chunks {
		score := 0.0
		for _, t := range chunk.TimeTags {
			if containsNormalized(queryTags, t) {
				score += timeTagMatch
				break
			}
		}
		for _, ct := range chunk.ClockTimes {
			if queryClocks[normalizeToken(ct)] {
				score += clockTimeMatch
				break
			}
		}
		for _, e := range chunk.Entities {
			if queryEntities[normalizeToken(e)] {
				score += entityMatch
				break
			}
		}
		if score == 0 {
			continue
		}
		score = clamp01(score)
		if score > best[chunk.LifelogID] {
			best[chunk.LifelogID] = score
		}
	}

	results := make([]Result, 0, len(best))
	for docID, score := range best {
		results = append(results, Result{DocID: docID, Score: score, Strategy: StrategyContextFilter})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})
	if len(results) > f.maxResults {
		results = results[:f.maxResults]
	}
	return results, nil
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[normalizeToken(it)] = true
	}
	return set
}

// containsNormalized reports whether tag appears in any query time phrase
// ("this afternoon" matches tag "afternoon").
func containsNormalized(queryPhrases map[string]bool, tag string) bool {
	tag = normalizeToken(tag)
	if queryPhrases[tag] {
		return true
	}
	for phrase := range queryPhrases {
		if strings.Contains(phrase, tag) {
			return true
		}
	}
	return false
}
