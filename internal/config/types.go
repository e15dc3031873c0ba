package config

// EmbeddingProvider identifies an embedding backend.
type EmbeddingProvider string

const (
	ProviderOpenAI EmbeddingProvider = "openai"
	ProviderOllama EmbeddingProvider = "ollama"
	ProviderStatic EmbeddingProvider = "static"
)

// Config is the top-level configuration, corresponding to .limitless.yml.
type Config struct {
	DataDir   string          `yaml:"data_dir" koanf:"data_dir"`
	API       APIConfig       `yaml:"api" koanf:"api"`
	Embedding EmbeddingConfig `yaml:"embedding" koanf:"embedding"`
	Search    SearchConfig    `yaml:"search" koanf:"search"`
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Sync      SyncConfig      `yaml:"sync" koanf:"sync"`
}

// APIConfig points at the lifelog source API. The API key is read from the
// LIMITLESS_API_KEY environment variable, never from the file.
type APIConfig struct {
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// EmbeddingConfig selects and sizes the embedding backend.
type EmbeddingConfig struct {
	Provider EmbeddingProvider `yaml:"provider" koanf:"provider"`
	Model    string            `yaml:"model" koanf:"model"`

	// Dimension is the width the vector index is built at. 0 means the
	// backend's native width; a larger value zero-pads narrower backends.
	Dimension int `yaml:"dimension" koanf:"dimension"`

	// OllamaURL overrides the local Ollama endpoint.
	OllamaURL string `yaml:"ollama_url" koanf:"ollama_url"`

	// OllamaDimension is the native width of the configured Ollama model.
	OllamaDimension int `yaml:"ollama_dimension" koanf:"ollama_dimension"`
}

// SearchConfig is the consensus engine's tunable surface.
type SearchConfig struct {
	MaxIterations        int                `yaml:"max_iterations" koanf:"max_iterations"`
	ConfidenceThreshold  float64            `yaml:"confidence_threshold" koanf:"confidence_threshold"`
	StrategyTimeoutMS    int                `yaml:"strategy_timeout_ms" koanf:"strategy_timeout_ms"`
	OverallDeadlineMS    int                `yaml:"overall_deadline_ms" koanf:"overall_deadline_ms"`
	VectorScoreThreshold float64            `yaml:"vector_score_threshold" koanf:"vector_score_threshold"`
	MaxResults           int                `yaml:"max_results" koanf:"max_results"`
	StrategyWeights      map[string]float64 `yaml:"strategy_weights" koanf:"strategy_weights"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// SyncConfig controls the background lifelog poller.
type SyncConfig struct {
	IntervalMinutes int `yaml:"interval_minutes" koanf:"interval_minutes"`
	PageSize        int `yaml:"page_size" koanf:"page_size"`
}
