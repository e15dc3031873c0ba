package embeddings

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// StaticEmbedder produces deterministic bag-of-words hash embeddings with no
// network dependency. Each token is hashed into a bucket and the resulting
// vector is L2-normalized, so texts sharing vocabulary land near each other.
// The quality is far below a learned model; it exists for offline use and
// tests.
type StaticEmbedder struct {
	dimensions int
}

// NewStaticEmbedder creates a static embedder with the given vector width.
func NewStaticEmbedder(dimensions int) *StaticEmbedder {
	if dimensions <= 0 {
		dimensions = 256
	}
	return &StaticEmbedder{dimensions: dimensions}
}

func (e *StaticEmbedder) Name() string {
	return "static-hash"
}

func (e *StaticEmbedder) Dimensions() int {
	return e.dimensions
}

func (e *StaticEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vecs[i] = e.embedText(t)
	}
	return vecs, nil
}

func (e *StaticEmbedder) embedText(text string) []float32 {
	vec := make([]float32, e.dimensions)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,!?;:\"'()")
		if tok == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(tok))
		sum := h.Sum32()
		bucket := int(sum) % e.dimensions
		if bucket < 0 {
			bucket += e.dimensions
		}
		// Sign from a spare hash bit spreads tokens across both directions.
		if sum&0x80000000 != 0 {
			vec[bucket] -= 1
		} else {
			vec[bucket] += 1
		}
	}

	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		norm := float32(1 / math.Sqrt(sumSquares))
		for i := range vec {
			vec[i] *= norm
		}
	}
	return vec
}
