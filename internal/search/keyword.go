package search

import (
	"context"
	"sort"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
)

// Scoring blend for the keyword strategy. Term coverage dominates, raw
// frequency saturates, and phrase adjacency adds a fixed bonus per adjacent
// pair.
const (
	coverageWeight   = 0.6
	frequencyWeight  = 0.25
	adjacencyBonus   = 0.1
	maxAdjacency     = 0.15
	frequencyHalfSat = 8.0
)

// KeywordStrategy scores lifelogs over the inverted index: term frequency
// plus a phrase-adjacency bonus, ties broken by recency. No matching terms
// is an empty result, not an error.
type KeywordStrategy struct {
	snap       *index.Snapshot
	maxResults int
}

// NewKeywordStrategy creates a keyword strategy bound to one snapshot
// generation.
func NewKeywordStrategy(snap *index.Snapshot, maxResults int) *KeywordStrategy {
	return &KeywordStrategy{snap: snap, maxResults: maxResults}
}

func (k *KeywordStrategy) Name() Strategy {
	return StrategyFastKeyword
}

func (k *KeywordStrategy) Run(_ context.Context, q Query) ([]Result, error) {
	terms := q.Classification.Terms
	if len(terms) == 0 {
		return nil, nil
	}

	type candidate struct {
		matched   int
		totalFreq int
		adjacency float64
	}
	candidates := make(map[string]*candidate)

	for _, term := range terms {
		for _, p := range k.snap.Keyword.Postings(term) {
			c := candidates[p.DocID]
			if c == nil {
				c = &candidate{}
				candidates[p.DocID] = c
			}
			c.matched++
			c.totalFreq += p.TermFreq
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// Phrase adjacency over the full token stream of the query, so stopwords
	// inside a phrase still anchor it.
	tokens := index.Tokenize(q.Text)
	for i := 0; i+1 < len(tokens); i++ {
		for docID, c := range candidates {
			if c.adjacency >= maxAdjacency {
				continue
			}
			if adjacentIn(k.snap.Keyword, docID, tokens[i], tokens[i+1]) {
				c.adjacency += adjacencyBonus
				if c.adjacency > maxAdjacency {
					c.adjacency = maxAdjacency
				}
			}
		}
	}

	results := make([]Result, 0, len(candidates))
	for docID, c := range candidates {
		coverage := float64(c.matched) / float64(len(terms))
		freq := float64(c.totalFreq) / (float64(c.totalFreq) + frequencyHalfSat)
		score := clamp01(coverageWeight*coverage + frequencyWeight*freq + c.adjacency)
		results = append(results, Result{DocID: docID, Score: score, Strategy: StrategyFastKeyword})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		di, _ := k.snap.Doc(results[i].DocID)
		dj, _ := k.snap.Doc(results[j].DocID)
		if !di.StartTime.Equal(dj.StartTime) {
			return di.StartTime.After(dj.StartTime)
		}
		return results[i].DocID < results[j].DocID
	})

	if len(results) > k.maxResults {
		results = results[:k.maxResults]
	}
	return results, nil
}

// adjacentIn reports whether term a is immediately followed by term b
// anywhere in the document.
func adjacentIn(ix *index.InvertedIndex, docID, a, b string) bool {
	var aPos, bPos []int
	for _, p := range ix.Postings(a) {
		if p.DocID == docID {
			aPos = p.Positions
			break
		}
	}
	if aPos == nil {
		return false
	}
	for _, p := range ix.Postings(b) {
		if p.DocID == docID {
			bPos = p.Positions
			break
		}
	}
	if bPos == nil {
		return false
	}

	// Position lists are sorted ascending by construction.
	j := 0
	for _, pos := range aPos {
		for j < len(bPos) && bPos[j] <= pos {
			j++
		}
		if j < len(bPos) && bPos[j] == pos+1 {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
