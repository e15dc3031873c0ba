package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/search"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != ".limitless" {
		t.Errorf("data dir = %q, want default", cfg.DataDir)
	}
	if cfg.Embedding.Provider != ProviderOpenAI {
		t.Errorf("provider = %q, want openai", cfg.Embedding.Provider)
	}
	if cfg.Server.Port != 8484 {
		t.Errorf("port = %d, want 8484", cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".limitless.yml")
	yaml := `
embedding:
  provider: static
  dimension: 256
search:
  max_iterations: 5
  confidence_threshold: 0.7
server:
  port: 9090
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Embedding.Provider != ProviderStatic {
		t.Errorf("provider = %q, want static", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimension != 256 {
		t.Errorf("dimension = %d, want 256", cfg.Embedding.Dimension)
	}
	if cfg.Search.MaxIterations != 5 {
		t.Errorf("max iterations = %d, want 5", cfg.Search.MaxIterations)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	// Untouched keys keep their defaults.
	if cfg.Sync.IntervalMinutes != 15 {
		t.Errorf("sync interval = %d, want default 15", cfg.Sync.IntervalMinutes)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LIMITLESS_SERVER_PORT", "7001")
	t.Setenv("LIMITLESS_EMBEDDING_PROVIDER", "static")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("port = %d, want env override 7001", cfg.Server.Port)
	}
	if cfg.Embedding.Provider != ProviderStatic {
		t.Errorf("provider = %q, want env override static", cfg.Embedding.Provider)
	}
}

func TestLoadIgnoresAPIKeyEnv(t *testing.T) {
	t.Setenv("LIMITLESS_API_KEY", "secret-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if APIKey() != "secret-key" {
		t.Errorf("APIKey() = %q, want the env value", APIKey())
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"unknown provider", func(c *Config) { c.Embedding.Provider = "anthropic" }},
		{"negative dimension", func(c *Config) { c.Embedding.Dimension = -1 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"zero sync interval", func(c *Config) { c.Sync.IntervalMinutes = 0 }},
		{"misspelled strategy weight", func(c *Config) {
			c.Search.StrategyWeights = map[string]float64{"fast-keywrod": 1.0}
		}},
		{"impossible deadlines", func(c *Config) {
			c.Search.StrategyTimeoutMS = 5000
			c.Search.OverallDeadlineMS = 1000
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate() = nil, want error")
			}
		})
	}
}

func TestSearchConfigConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.StrategyTimeoutMS = 1500
	cfg.Search.OverallDeadlineMS = 4000
	cfg.Search.StrategyWeights = map[string]float64{
		"fast-keyword":    0.9,
		"vector-semantic": 0.5,
	}

	sc, err := cfg.SearchConfig()
	if err != nil {
		t.Fatalf("SearchConfig: %v", err)
	}
	if sc.StrategyTimeout != 1500*time.Millisecond {
		t.Errorf("strategy timeout = %s, want 1.5s", sc.StrategyTimeout)
	}
	if sc.OverallDeadline != 4*time.Second {
		t.Errorf("overall deadline = %s, want 4s", sc.OverallDeadline)
	}
	if got := sc.Weights[search.StrategyFastKeyword]; got != 0.9 {
		t.Errorf("keyword weight = %g, want 0.9", got)
	}
	if got := sc.Weights[search.StrategyVectorSemantic]; got != 0.5 {
		t.Errorf("vector weight = %g, want 0.5", got)
	}
}

func TestSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".limitless.yml")

	cfg := DefaultConfig()
	cfg.Server.Port = 9191
	cfg.Embedding.Provider = ProviderStatic
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("port = %d, want 9191", loaded.Server.Port)
	}
	if loaded.Embedding.Provider != ProviderStatic {
		t.Errorf("provider = %q, want static", loaded.Embedding.Provider)
	}
}
