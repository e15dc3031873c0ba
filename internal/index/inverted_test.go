package index

import (
	"reflect"
	"testing"
)

func TestInvertedIndexAddAndPostings(t *testing.T) {
	ix := NewInvertedIndex()
	ix.Add("log-1", "the kids played while the kids laughed")
	ix.Add("log-2", "kids everywhere")

	postings := ix.Postings("kids")
	if len(postings) != 2 {
		t.Fatalf("got %d postings for %q, want 2", len(postings), "kids")
	}

	var first Posting
	for _, p := range postings {
		if p.DocID == "log-1" {
			first = p
		}
	}
	if first.TermFreq != 2 {
		t.Errorf("log-1 term freq = %d, want 2", first.TermFreq)
	}
	if want := []int{1, 5}; !reflect.DeepEqual(first.Positions, want) {
		t.Errorf("log-1 positions = %v, want %v", first.Positions, want)
	}
}

func TestInvertedIndexUnknownTerm(t *testing.T) {
	ix := NewInvertedIndex()
	ix.Add("log-1", "hello world")
	if got := ix.Postings("submarine"); got != nil {
		t.Errorf("Postings(unknown) = %v, want nil", got)
	}
}

func TestInvertedIndexDocTokenCount(t *testing.T) {
	ix := NewInvertedIndex()
	ix.Add("log-1", "one two three")
	if got := ix.DocTokenCount("log-1"); got != 3 {
		t.Errorf("DocTokenCount = %d, want 3", got)
	}
	if got := ix.DocTokenCount("missing"); got != 0 {
		t.Errorf("DocTokenCount(missing) = %d, want 0", got)
	}
}

func TestInvertedIndexTerms(t *testing.T) {
	ix := NewInvertedIndex()
	ix.Add("log-1", "alpha beta alpha")
	if got := ix.Terms(); got != 2 {
		t.Errorf("Terms = %d, want 2", got)
	}
}
