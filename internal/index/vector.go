package index

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/embeddings"
)

// VectorHit is one nearest-neighbor match from the vector index. ID is the
// chunk ID; LifelogID resolves the hit back to its parent document.
type VectorHit struct {
	ID         string
	LifelogID  string
	Position   int
	Similarity float32
}

// VectorIndex stores chunk embeddings in an in-memory chromem collection.
// Like the inverted index it is write-once per snapshot generation.
type VectorIndex struct {
	collection *chromem.Collection
	dimensions int
}

// newVectorIndex creates an empty vector index bound to the embedder's
// configured width.
func newVectorIndex(embedder embeddings.Embedder, generation uint64) (*VectorIndex, error) {
	db := chromem.NewDB()
	name := fmt.Sprintf("lifelogs-gen-%d", generation)
	col, err := db.GetOrCreateCollection(name, nil, embeddings.ToChromemFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("create collection %s: %w", name, err)
	}
	return &VectorIndex{collection: col, dimensions: embedder.Dimensions()}, nil
}

// add stores pre-embedded chunks. Every vector must have the index width;
// narrower backends are padded before they reach this point.
func (v *VectorIndex) add(ctx context.Context, docs []chromem.Document) error {
	for _, d := range docs {
		if len(d.Embedding) != v.dimensions {
			return fmt.Errorf("embedding for %s has dimension %d, index is built at %d", d.ID, len(d.Embedding), v.dimensions)
		}
	}
	return v.collection.AddDocuments(ctx, docs, 1)
}

// Query returns up to topK chunks by descending cosine similarity against
// queryVector, dropping hits below threshold.
func (v *VectorIndex) Query(ctx context.Context, queryVector []float32, topK int, threshold float32) ([]VectorHit, error) {
	if len(queryVector) != v.dimensions {
		return nil, fmt.Errorf("query vector has dimension %d, index is built at %d", len(queryVector), v.dimensions)
	}

	count := v.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := v.collection.QueryEmbedding(ctx, queryVector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}

	var hits []VectorHit
	for _, r := range results {
		if r.Similarity < threshold {
			continue
		}
		hits = append(hits, VectorHit{
			ID:         r.ID,
			LifelogID:  r.Metadata["lifelog_id"],
			Position:   atoiOrZero(r.Metadata["position"]),
			Similarity: r.Similarity,
		})
	}
	return hits, nil
}

// Count returns the number of stored chunk vectors.
func (v *VectorIndex) Count() int {
	return v.collection.Count()
}

// Dimensions returns the width the index was built at.
func (v *VectorIndex) Dimensions() int {
	return v.dimensions
}

func atoiOrZero(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
