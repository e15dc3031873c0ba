package index

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	chromem "github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/embeddings"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
)

// embedBatchSize is the number of chunk texts sent to the embedder per call.
const embedBatchSize = 32

// Builder assembles index snapshots from the lifelog corpus.
type Builder struct {
	index    *Index
	embedder embeddings.Embedder
	workers  int
	logger   *zap.Logger
}

// NewBuilder creates a Builder that publishes into ix. workers bounds the
// concurrent embedding batches; 0 means half the CPUs.
func NewBuilder(ix *Index, embedder embeddings.Embedder, workers int, logger *zap.Logger) *Builder {
	if workers < 1 {
		workers = runtime.NumCPU() / 2
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{index: ix, embedder: embedder, workers: workers, logger: logger}
}

// Build constructs the next index generation from logs and publishes it.
// The previously published generation stays live until the swap; a failed
// build leaves it untouched.
func (b *Builder) Build(ctx context.Context, logs []*lifelog.Lifelog) (*Snapshot, error) {
	gen := b.index.nextGeneration()
	start := time.Now()

	keyword := NewInvertedIndex()
	docs := make(map[string]DocInfo, len(logs))
	var chunks []lifelog.Chunk

	for _, l := range logs {
		text := lifelog.Flatten(l.Markdown)
		keyword.Add(l.ID, l.Title+"\n"+text)
		docs[l.ID] = DocInfo{
			ID:        l.ID,
			Title:     l.Title,
			Text:      text,
			StartTime: l.StartTime,
		}
		chunks = append(chunks, lifelog.ChunkLifelog(l)...)
	}

	vector, err := newVectorIndex(b.embedder, gen)
	if err != nil {
		return nil, fmt.Errorf("creating vector index: %w", err)
	}
	if err := b.embedChunks(ctx, vector, chunks); err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}

	snap := &Snapshot{
		Generation: gen,
		Keyword:    keyword,
		Vector:     vector,
		Docs:       docs,
		Chunks:     chunks,
		BuiltAt:    time.Now(),
	}
	b.index.publish(snap)

	b.logger.Info("index generation published",
		zap.Uint64("generation", gen),
		zap.Int("lifelogs", len(logs)),
		zap.Int("chunks", len(chunks)),
		zap.Int("terms", keyword.Terms()),
		zap.Duration("took", time.Since(start)),
	)
	return snap, nil
}

// embedChunks embeds chunk texts in fixed-size batches on a worker pool and
// stores the vectors. The first batch error wins; remaining batches still
// drain before Build returns.
func (b *Builder) embedChunks(ctx context.Context, vector *VectorIndex, chunks []lifelog.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	pool, err := ants.NewPool(b.workers)
	if err != nil {
		return fmt.Errorf("creating embed pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	vectors := make([][]float32, len(chunks))

	for batchStart := 0; batchStart < len(chunks); batchStart += embedBatchSize {
		batchEnd := min(batchStart+embedBatchSize, len(chunks))
		offset, batch := batchStart, chunks[batchStart:batchEnd]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, c := range batch {
				texts[i] = c.Text
			}
			vecs, err := b.embedder.Embed(ctx, texts)
			if err == nil && len(vecs) != len(batch) {
				err = fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(batch))
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			for i, v := range vecs {
				vectors[offset+i] = v
			}
		})
		if submitErr != nil {
			wg.Done()
			return fmt.Errorf("submitting embed batch: %w", submitErr)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = chromem.Document{
			ID:        c.ID,
			Content:   c.Text,
			Embedding: vectors[i],
			Metadata: map[string]string{
				"lifelog_id": c.LifelogID,
				"position":   strconv.Itoa(c.Position),
			},
		}
	}
	return vector.add(ctx, docs)
}
