package search

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/embeddings"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
)

// VectorStrategy runs nearest-neighbor lookup over the chunk vector index
// and resolves hits to parent lifelogs, keeping each lifelog's best chunk
// similarity. Vector search is an optional signal: any backend fault
// (embedding failure, dimension mismatch) degrades to an empty result list
// instead of failing the search.
type VectorStrategy struct {
	snap      *index.Snapshot
	embedder  embeddings.Embedder
	topK      int
	threshold float32
	logger    *zap.Logger
}

// NewVectorStrategy creates a vector strategy bound to one snapshot
// generation. topK is the chunk-level fan-in before parent resolution.
func NewVectorStrategy(snap *index.Snapshot, embedder embeddings.Embedder, topK int, threshold float32, logger *zap.Logger) *VectorStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VectorStrategy{snap: snap, embedder: embedder, topK: topK, threshold: threshold, logger: logger}
}

func (v *VectorStrategy) Name() Strategy {
	return StrategyVectorSemantic
}

func (v *VectorStrategy) Run(ctx context.Context, q Query) ([]Result, error) {
	queryVec, err := embeddings.EmbedOne(ctx, v.embedder, q.Text)
	if err != nil {
		v.logger.Warn("vector strategy: query embedding failed", zap.Error(err))
		return nil, nil
	}
	if len(queryVec) == 0 {
		return nil, nil
	}

	hits, err := v.snap.Vector.Query(ctx, queryVec, v.topK*3, v.threshold)
	if err != nil {
		v.logger.Warn("vector strategy: index query failed", zap.Error(err))
		return nil, nil
	}

	best := make(map[string]float64)
	for _, h := range hits {
		if h.LifelogID == "" {
			continue
		}
		score := clamp01(float64(h.Similarity))
		if score > best[h.LifelogID] {
			best[h.LifelogID] = score
		}
	}

	results := make([]Result, 0, len(best))
	for docID, score := range best {
		results = append(results, Result{DocID: docID, Score: score, Strategy: StrategyVectorSemantic})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})
	if len(results) > v.topK {
		results = results[:v.topK]
	}
	return results, nil
}
