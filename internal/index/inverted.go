package index

import "time"

// Posting records one document containing a term: the term frequency and the
// token positions it occurred at, to support phrase-adjacency scoring.
type Posting struct {
	DocID     string
	TermFreq  int
	Positions []int
}

// InvertedIndex maps normalized terms to posting lists over whole lifelogs.
// It is write-once: Add during a build, then read-only once the snapshot
// holding it is published.
type InvertedIndex struct {
	postings  map[string][]Posting
	docTokens map[string]int // doc id -> total token count, for TF normalization
}

// NewInvertedIndex creates an empty inverted index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		postings:  make(map[string][]Posting),
		docTokens: make(map[string]int),
	}
}

// Add tokenizes text and indexes it under docID. Calling Add twice with the
// same docID during one build produces duplicate postings; builds always
// start from a fresh index.
func (ix *InvertedIndex) Add(docID, text string) {
	tokens := Tokenize(text)
	ix.docTokens[docID] = len(tokens)

	positions := make(map[string][]int)
	for pos, tok := range tokens {
		positions[tok] = append(positions[tok], pos)
	}
	for term, posns := range positions {
		ix.postings[term] = append(ix.postings[term], Posting{
			DocID:     docID,
			TermFreq:  len(posns),
			Positions: posns,
		})
	}
}

// Postings returns the posting list for a normalized term, or nil when no
// document contains it.
func (ix *InvertedIndex) Postings(term string) []Posting {
	return ix.postings[term]
}

// DocTokenCount returns the total token count of a document, or 0 for an
// unknown doc.
func (ix *InvertedIndex) DocTokenCount(docID string) int {
	return ix.docTokens[docID]
}

// Terms returns the number of distinct indexed terms.
func (ix *InvertedIndex) Terms() int {
	return len(ix.postings)
}

// DocInfo carries the per-document metadata a snapshot retains for scoring
// and result assembly: title and recency for tiebreaks, flattened text for
// term-coverage checks.
type DocInfo struct {
	ID        string
	Title     string
	Text      string
	StartTime time.Time
}
