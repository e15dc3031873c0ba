package limitless

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
)

// cursorSource names this poller's row in the sync_state table.
const cursorSource = "limitless-api"

// Poller periodically pulls new lifelogs from the API into the store and
// triggers an index rebuild after each batch that changed anything.
type Poller struct {
	client   *Client
	store    *lifelog.Store
	interval time.Duration
	pageSize int
	logger   *zap.Logger

	// OnBatch runs after a sync that stored at least one lifelog; the index
	// rebuild hangs off this.
	OnBatch func(ctx context.Context) error

	// OnPage, if set, is called with each page's lifelog count (progress
	// reporting).
	OnPage func(count int)
}

// NewPoller creates a Poller.
func NewPoller(client *Client, store *lifelog.Store, interval time.Duration, pageSize int, logger *zap.Logger) *Poller {
	if pageSize < 1 {
		pageSize = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		client:   client,
		store:    store,
		interval: interval,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Run polls until ctx is cancelled. Sync failures are logged and retried on
// the next tick.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if n, err := p.SyncOnce(ctx); err != nil {
			p.logger.Warn("lifelog sync failed", zap.Error(err))
		} else if n > 0 {
			p.logger.Info("lifelog sync completed", zap.Int("new", n))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SyncOnce pulls every page past the saved cursor, stores the lifelogs, and
// advances the cursor. Returns the number of lifelogs stored.
func (p *Poller) SyncOnce(ctx context.Context) (int, error) {
	cursor, err := p.store.Cursor(ctx, cursorSource)
	if err != nil {
		return 0, err
	}

	total := 0
	for {
		logs, next, err := p.client.ListLifelogs(ctx, cursor, p.pageSize)
		if err != nil {
			return total, fmt.Errorf("listing lifelogs: %w", err)
		}
		for _, l := range logs {
			if err := p.store.Put(ctx, l); err != nil {
				return total, err
			}
		}
		total += len(logs)
		if p.OnPage != nil {
			p.OnPage(len(logs))
		}

		if next == "" || next == cursor {
			if next != "" {
				cursor = next
			}
			break
		}
		cursor = next
		if err := p.store.SetCursor(ctx, cursorSource, cursor); err != nil {
			return total, err
		}
	}

	if cursor != "" {
		if err := p.store.SetCursor(ctx, cursorSource, cursor); err != nil {
			return total, err
		}
	}

	if total > 0 && p.OnBatch != nil {
		if err := p.OnBatch(ctx); err != nil {
			return total, fmt.Errorf("post-sync rebuild: %w", err)
		}
	}
	return total, nil
}
