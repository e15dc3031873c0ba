package search

import (
	"testing"
	"time"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
)

func TestConfidenceEmptyResults(t *testing.T) {
	if got := Confidence(nil, "anything", fusionSnapshot()); got != 0 {
		t.Fatalf("Confidence(nil) = %g, want 0", got)
	}
	if got := Confidence([]ConsensusResult{}, "anything", fusionSnapshot()); got != 0 {
		t.Fatalf("Confidence(empty) = %g, want 0", got)
	}
}

func TestConfidenceScoreComponentOnly(t *testing.T) {
	results := []ConsensusResult{{
		DocID:          "missing-doc",
		Strategies:     []Strategy{StrategyFastKeyword},
		ConsensusScore: 0.5,
	}}
	// Keyword-only, no matching doc for coverage: only the score term counts.
	got := Confidence(results, "picnic basket", fusionSnapshot())
	want := confScoreWeight * 0.5
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("confidence = %g, want %g", got, want)
	}
}

func TestConfidenceFamilyAgreement(t *testing.T) {
	base := []ConsensusResult{{
		DocID:          "missing-doc",
		Strategies:     []Strategy{StrategyFastKeyword},
		ConsensusScore: 0.5,
	}}
	agreed := []ConsensusResult{{
		DocID:          "missing-doc",
		Strategies:     []Strategy{StrategyFastKeyword, StrategyVectorSemantic},
		ConsensusScore: 0.5,
	}}
	snap := fusionSnapshot()
	withAgreement := Confidence(agreed, "picnic basket", snap)
	without := Confidence(base, "picnic basket", snap)
	if diff := withAgreement - without - confAgreementWeight; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("agreement added %g, want %g", withAgreement-without, confAgreementWeight)
	}
}

func TestConfidenceFilterDoesNotCountAsAgreement(t *testing.T) {
	results := []ConsensusResult{{
		DocID:          "missing-doc",
		Strategies:     []Strategy{StrategyContextFilter, StrategyRecency},
		ConsensusScore: 0.5,
	}}
	got := Confidence(results, "picnic basket", fusionSnapshot())
	want := confScoreWeight * 0.5
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("confidence = %g, want %g (filter strategies alone must not add agreement)", got, want)
	}
}

func TestConfidenceTermCoverage(t *testing.T) {
	snap := &index.Snapshot{
		Docs: map[string]index.DocInfo{
			"log-1": {
				ID:        "log-1",
				Title:     "Picnic",
				Text:      "We packed the picnic basket before noon.",
				StartTime: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
			},
		},
	}
	results := []ConsensusResult{{
		DocID:          "log-1",
		Strategies:     []Strategy{StrategyFastKeyword},
		ConsensusScore: 0.5,
	}}

	full := Confidence(results, "picnic basket", snap)
	wantFull := confScoreWeight*0.5 + confCoverageWeight
	if diff := full - wantFull; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("full coverage confidence = %g, want %g", full, wantFull)
	}

	half := Confidence(results, "picnic sailboat", snap)
	wantHalf := confScoreWeight*0.5 + confCoverageWeight*0.5
	if diff := half - wantHalf; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("half coverage confidence = %g, want %g", half, wantHalf)
	}
}

func TestConfidenceNeverReachesCertainty(t *testing.T) {
	snap := &index.Snapshot{
		Docs: map[string]index.DocInfo{
			"log-1": {ID: "log-1", Title: "Picnic basket", Text: "picnic basket"},
		},
	}
	results := []ConsensusResult{{
		DocID:          "log-1",
		Strategies:     []Strategy{StrategyFastKeyword, StrategyVectorSemantic},
		ConsensusScore: 1.0,
	}}
	// Every component maxed: the cap must hold.
	got := Confidence(results, "picnic basket", snap)
	if got != confidenceCap {
		t.Errorf("confidence = %g, want capped at %g", got, confidenceCap)
	}
	if got >= 1.0 {
		t.Errorf("confidence = %g, must stay below 1.0", got)
	}
}
