package search

import (
	"strings"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
)

// confidenceCap keeps every confidence strictly below certainty. No
// configuration of this heuristic is treated as certain.
const confidenceCap = 0.95

// Blend of the three confidence signals: the top result's consensus score,
// agreement between the keyword-like and semantic-like strategy families on
// that result, and coverage of the query's significant terms by its text.
const (
	confScoreWeight     = 0.6
	confAgreementWeight = 0.2
	confCoverageWeight  = 0.2
)

// Confidence derives a scalar in [0, 0.95] estimating how trustworthy the
// top-ranked result is. An empty result list is confidence 0.
func Confidence(results []ConsensusResult, query string, snap *index.Snapshot) float64 {
	if len(results) == 0 {
		return 0
	}
	top := results[0]

	score := confScoreWeight * top.ConsensusScore

	if familiesAgree(top.Strategies) {
		score += confAgreementWeight
	}

	if snap != nil {
		if doc, ok := snap.Doc(top.DocID); ok {
			score += confCoverageWeight * termCoverage(query, doc)
		}
	}

	if score > confidenceCap {
		return confidenceCap
	}
	return clamp01(score)
}

// familiesAgree reports whether the keyword and semantic strategy families
// both surfaced the result. The filter
// family corroborates but never counts as independent agreement on its own.
func familiesAgree(strategies []Strategy) bool {
	var keyword, semantic bool
	for _, s := range strategies {
		switch s.Family() {
		case FamilyKeyword:
			keyword = true
		case FamilySemantic:
			semantic = true
		}
	}
	return keyword && semantic
}

// termCoverage returns the fraction of significant query terms present in
// the document's title or text.
func termCoverage(query string, doc index.DocInfo) float64 {
	terms := index.SignificantTerms(query)
	if len(terms) == 0 {
		return 0
	}
	haystack := strings.ToLower(doc.Title + "\n" + doc.Text)
	covered := 0
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			covered++
		}
	}
	return float64(covered) / float64(len(terms))
}
