// Package index builds and publishes immutable search index generations over
// the lifelog corpus: an inverted term index for keyword scoring and a
// chromem-backed vector index for semantic lookup.
//
// Rebuilds never mutate a live index. A build assembles the next generation
// off to the side and publishes it with one atomic pointer swap; queries in
// flight keep reading the generation they started with.
package index

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
)

// ErrIndexUnavailable is returned when no generation has been published yet.
// Callers treat it like a strategy that was never selected, not a failure.
var ErrIndexUnavailable = errors.New("index not built yet")

// Snapshot is one immutable index generation. All fields are read-only after
// publication.
type Snapshot struct {
	Generation uint64
	Keyword    *InvertedIndex
	Vector     *VectorIndex
	Docs       map[string]DocInfo
	Chunks     []lifelog.Chunk
	BuiltAt    time.Time
}

// Doc returns the retained metadata for a document ID.
func (s *Snapshot) Doc(id string) (DocInfo, bool) {
	d, ok := s.Docs[id]
	return d, ok
}

// Index owns the currently published snapshot.
type Index struct {
	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64
}

// New creates an Index with no published snapshot.
func New() *Index {
	return &Index{}
}

// Current returns the published snapshot, or ErrIndexUnavailable before the
// first build completes.
func (ix *Index) Current() (*Snapshot, error) {
	s := ix.current.Load()
	if s == nil {
		return nil, ErrIndexUnavailable
	}
	return s, nil
}

// publish atomically swaps in a freshly built snapshot.
func (ix *Index) publish(s *Snapshot) {
	ix.current.Store(s)
}

// nextGeneration reserves a generation number for a build.
func (ix *Index) nextGeneration() uint64 {
	return ix.generation.Add(1)
}
