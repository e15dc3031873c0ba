package embeddings

import (
	"context"
	"math"
	"testing"
)

func TestStaticEmbedderDeterministic(t *testing.T) {
	e := NewStaticEmbedder(128)
	ctx := context.Background()

	a, err := e.Embed(ctx, []string{"the kids went to the park"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := e.Embed(ctx, []string{"the kids went to the park"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatalf("component %d differs between identical inputs", i)
		}
	}
}

func TestStaticEmbedderDimensions(t *testing.T) {
	e := NewStaticEmbedder(96)
	if got := e.Dimensions(); got != 96 {
		t.Fatalf("Dimensions = %d, want 96", got)
	}
	vecs, err := e.Embed(context.Background(), []string{"hello", "world"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vecs))
	}
	for i, v := range vecs {
		if len(v) != 96 {
			t.Errorf("vector %d width = %d, want 96", i, len(v))
		}
	}
}

func TestStaticEmbedderDefaultsWidth(t *testing.T) {
	if got := NewStaticEmbedder(0).Dimensions(); got != 256 {
		t.Fatalf("Dimensions = %d, want default 256", got)
	}
}

func TestStaticEmbedderNormalized(t *testing.T) {
	e := NewStaticEmbedder(128)
	vecs, err := e.Embed(context.Background(), []string{"a handful of words to hash"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	var sum float64
	for _, v := range vecs[0] {
		sum += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(sum)-1) > 1e-5 {
		t.Errorf("vector norm = %g, want 1", math.Sqrt(sum))
	}
}

func TestStaticEmbedderSharedVocabularyIsCloser(t *testing.T) {
	e := NewStaticEmbedder(256)
	ctx := context.Background()
	vecs, err := e.Embed(ctx, []string{
		"the kids played in the garden",
		"kids played outside in the garden today",
		"quarterly revenue projections spreadsheet",
	})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	related := dot(vecs[0], vecs[1])
	unrelated := dot(vecs[0], vecs[2])
	if related <= unrelated {
		t.Errorf("related similarity %g not above unrelated %g", related, unrelated)
	}
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func TestStaticEmbedderEmptyText(t *testing.T) {
	e := NewStaticEmbedder(64)
	vecs, err := e.Embed(context.Background(), []string{""})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	for _, v := range vecs[0] {
		if v != 0 {
			t.Fatal("empty text produced a nonzero vector")
		}
	}
}
