package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir: ".limitless",
		API: APIConfig{
			BaseURL: "https://api.limitless.ai/v1",
		},
		Embedding: EmbeddingConfig{
			Provider:        ProviderOpenAI,
			Model:           "text-embedding-3-small",
			Dimension:       0,
			OllamaDimension: 768,
		},
		Search: SearchConfig{
			MaxIterations:        3,
			ConfidenceThreshold:  0.8,
			StrategyTimeoutMS:    2000,
			OverallDeadlineMS:    5000,
			VectorScoreThreshold: 0.25,
			MaxResults:           10,
			StrategyWeights: map[string]float64{
				"fast-keyword":         1.0,
				"vector-semantic":      0.75,
				"context-aware-filter": 0.3,
				"recency":              0.4,
			},
		},
		Server: ServerConfig{
			Port: 8484,
		},
		Sync: SyncConfig{
			IntervalMinutes: 15,
			PageSize:        50,
		},
	}
}
