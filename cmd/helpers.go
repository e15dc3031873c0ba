package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/config"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/db"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/embeddings"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/search"
)

// app bundles the wired dependencies a command needs.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	database *db.DB
	store    *lifelog.Store
	index    *index.Index
	builder  *index.Builder
	engine   *search.Engine
}

// loadApp loads config and wires the store, index, and engine. Commands that
// only need a subset still go through here; the wiring is cheap until an
// index build runs.
func loadApp(logger *zap.Logger) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	database, err := db.Open(filepath.Join(cfg.DataDir, "lifelogs.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		database.Close()
		return nil, err
	}

	store := lifelog.NewStore(database)
	idx := index.New()
	builder := index.NewBuilder(idx, embedder, 0, logger)

	searchCfg, err := cfg.SearchConfig()
	if err != nil {
		database.Close()
		return nil, err
	}
	engine, err := search.NewEngine(idx, embedder, searchCfg, logger)
	if err != nil {
		database.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		database: database,
		store:    store,
		index:    idx,
		builder:  builder,
		engine:   engine,
	}, nil
}

func (a *app) close() {
	if a.database != nil {
		a.database.Close()
	}
}

// rebuildIndex builds and publishes a fresh index generation from the store.
func (a *app) rebuildIndex(ctx context.Context) error {
	logs, err := a.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("listing lifelogs: %w", err)
	}
	if _, err := a.builder.Build(ctx, logs); err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	return nil
}

// newEmbedder creates the configured embedding backend, padded to the target
// dimension when one is set.
func newEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	var (
		e   embeddings.Embedder
		err error
	)
	switch cfg.Embedding.Provider {
	case config.ProviderOpenAI:
		key := config.OpenAIKey()
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set; set it or switch embedding.provider to ollama or static")
		}
		e = embeddings.NewOpenAIEmbedder(key, cfg.Embedding.Model)
	case config.ProviderOllama:
		e = embeddings.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.OllamaDimension, cfg.Embedding.OllamaURL)
	case config.ProviderStatic:
		e = embeddings.NewStaticEmbedder(cfg.Embedding.Dimension)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}

	if target := cfg.Embedding.Dimension; target > 0 && target != e.Dimensions() {
		if e, err = embeddings.NewPadded(e, target); err != nil {
			return nil, err
		}
	}
	return e, nil
}
