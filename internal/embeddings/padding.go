package embeddings

import (
	"context"
	"errors"
	"fmt"
)

// ErrConfiguration reports an impossible embedder configuration. It is fatal
// and never retried.
var ErrConfiguration = errors.New("invalid embedder configuration")

// Padded decorates a lower-dimensional backend so it satisfies a wider index
// width by appending zeros. The zero tail contributes nothing to cosine
// similarity.
//
// Padded vectors are only comparable against vectors produced through the
// same backend; padding reconciles widths, not semantics. Mixing backends in
// one index remains unsupported.
type Padded struct {
	inner  Embedder
	target int
}

// NewPadded wraps inner to emit vectors of target width. A target narrower
// than the backend's native width is rejected: truncation would silently
// discard signal.
func NewPadded(inner Embedder, target int) (*Padded, error) {
	if native := inner.Dimensions(); target < native {
		return nil, fmt.Errorf("%w: target dimension %d is smaller than native dimension %d of %s",
			ErrConfiguration, target, native, inner.Name())
	}
	return &Padded{inner: inner, target: target}, nil
}

func (p *Padded) Name() string {
	return p.inner.Name()
}

func (p *Padded) Dimensions() int {
	return p.target
}

func (p *Padded) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := p.inner.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	for i, v := range vecs {
		if len(v) < p.target {
			padded := make([]float32, p.target)
			copy(padded, v)
			vecs[i] = padded
		}
	}
	return vecs, nil
}
