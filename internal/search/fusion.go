package search

import (
	"sort"
	"time"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
)

// Agreement bonus per contributing strategy beyond the first, and its cap.
// Documents that multiple independent signals agree on outrank documents a
// single strategy surfaced, even at equal raw scores.
const (
	agreementBonusStep = 0.05
	agreementBonusCap  = 0.15
)

// ConsensusResult is one fused document: the strategies that surfaced it,
// their raw scores, and the derived consensus score in [0,1]. Rebuilt on
// every query, never persisted.
type ConsensusResult struct {
	DocID          string     `json:"id"`
	Title          string     `json:"title"`
	StartTime      time.Time  `json:"startTime"`
	Strategies     []Strategy `json:"strategies"`
	Scores         []float64  `json:"scores"`
	ConsensusScore float64    `json:"consensusScore"`
}

// Fuse groups successful strategy outputs by document identity and computes
// the strategy-weighted consensus score:
//
//	clamp01( Σ(weight·score) / Σ(weight) + agreementBonus )
//
// Only OutcomeSuccess outputs participate; a strategy absent from weights
// contributes at its default weight. Fusion is deterministic: identical
// inputs produce an identical ranked list.
func Fuse(outcomes map[Strategy]Outcome, weights map[Strategy]float64, snap *index.Snapshot) []ConsensusResult {
	type group struct {
		strategies []Strategy
		scores     []float64
		weighted   float64
		weightSum  float64
	}
	groups := make(map[string]*group)

	// Fixed strategy order keeps grouping independent of map iteration.
	for _, s := range AllStrategies {
		outcome, ok := outcomes[s]
		if !ok || outcome.Status != OutcomeSuccess {
			continue
		}
		w, ok := weights[s]
		if !ok {
			w = defaultWeights[s]
		}
		if w <= 0 {
			continue
		}

		// Keep each strategy's best score per document.
		bestForDoc := make(map[string]float64)
		for _, r := range outcome.Results {
			if r.Score > bestForDoc[r.DocID] {
				bestForDoc[r.DocID] = r.Score
			}
		}
		// Preserve first-seen order from the strategy's ranked output.
		seen := make(map[string]bool)
		for _, r := range outcome.Results {
			if seen[r.DocID] {
				continue
			}
			seen[r.DocID] = true
			score := bestForDoc[r.DocID]

			g := groups[r.DocID]
			if g == nil {
				g = &group{}
				groups[r.DocID] = g
			}
			g.strategies = append(g.strategies, s)
			g.scores = append(g.scores, score)
			g.weighted += w * score
			g.weightSum += w
		}
	}

	results := make([]ConsensusResult, 0, len(groups))
	for docID, g := range groups {
		bonus := agreementBonusStep * float64(len(g.strategies)-1)
		if bonus > agreementBonusCap {
			bonus = agreementBonusCap
		}
		cr := ConsensusResult{
			DocID:          docID,
			Strategies:     g.strategies,
			Scores:         g.scores,
			ConsensusScore: clamp01(g.weighted/g.weightSum + bonus),
		}
		if doc, ok := snap.Doc(docID); ok {
			cr.Title = doc.Title
			cr.StartTime = doc.StartTime
		}
		results = append(results, cr)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].ConsensusScore != results[j].ConsensusScore {
			return results[i].ConsensusScore > results[j].ConsensusScore
		}
		if len(results[i].Strategies) != len(results[j].Strategies) {
			return len(results[i].Strategies) > len(results[j].Strategies)
		}
		if !results[i].StartTime.Equal(results[j].StartTime) {
			return results[i].StartTime.After(results[j].StartTime)
		}
		return results[i].DocID < results[j].DocID
	})
	return results
}

// Contributed reports whether a strategy is among the result's contributors.
func (r *ConsensusResult) Contributed(s Strategy) bool {
	for _, c := range r.Strategies {
		if c == s {
			return true
		}
	}
	return false
}
