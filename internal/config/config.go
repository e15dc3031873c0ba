// Package config loads and validates the .limitless.yml configuration,
// layering defaults, the YAML file, and LIMITLESS_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/search"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LIMITLESS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// LIMITLESS_SEARCH_MAX_ITERATIONS -> search.max_iterations, etc. The API
	// key deliberately stays out of koanf; it is read directly where needed.
	if err := k.Load(env.Provider("LIMITLESS_", ".", func(s string) string {
		if s == "LIMITLESS_API_KEY" {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "LIMITLESS_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized embedding provider values.
var validProviders = map[EmbeddingProvider]bool{
	ProviderOpenAI: true,
	ProviderOllama: true,
	ProviderStatic: true,
}

// Validate checks that the configuration contains valid values. Search
// tunables are validated through the engine's own rules so a bad weight map
// or impossible deadline fails here, at startup.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if !validProviders[c.Embedding.Provider] {
		return fmt.Errorf("invalid embedding provider %q: must be one of openai, ollama, static", c.Embedding.Provider)
	}
	if c.Embedding.Dimension < 0 {
		return fmt.Errorf("embedding dimension must be non-negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Sync.IntervalMinutes < 1 {
		return fmt.Errorf("sync interval_minutes must be at least 1")
	}

	if _, err := c.SearchConfig(); err != nil {
		return err
	}
	return nil
}

// SearchConfig converts the file representation into the engine's Config,
// rejecting unknown strategy names in the weight map.
func (c *Config) SearchConfig() (search.Config, error) {
	sc := search.DefaultConfig()
	s := c.Search

	if s.MaxIterations != 0 {
		sc.MaxIterations = s.MaxIterations
	}
	if s.ConfidenceThreshold != 0 {
		sc.ConfidenceThreshold = s.ConfidenceThreshold
	}
	if s.StrategyTimeoutMS != 0 {
		sc.StrategyTimeout = time.Duration(s.StrategyTimeoutMS) * time.Millisecond
	}
	if s.OverallDeadlineMS != 0 {
		sc.OverallDeadline = time.Duration(s.OverallDeadlineMS) * time.Millisecond
	}
	if s.VectorScoreThreshold != 0 {
		sc.VectorScoreThreshold = float32(s.VectorScoreThreshold)
	}
	if s.MaxResults != 0 {
		sc.MaxResults = s.MaxResults
	}
	if len(s.StrategyWeights) > 0 {
		weights := make(map[search.Strategy]float64, len(s.StrategyWeights))
		for name, w := range s.StrategyWeights {
			strategy, err := search.ParseStrategy(name)
			if err != nil {
				return search.Config{}, err
			}
			weights[strategy] = w
		}
		sc.Weights = weights
	}

	if err := sc.Validate(); err != nil {
		return search.Config{}, err
	}
	return sc, nil
}

// APIKey returns the lifelog API key from the environment.
func APIKey() string {
	return os.Getenv("LIMITLESS_API_KEY")
}

// OpenAIKey returns the OpenAI API key from the environment.
func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}
