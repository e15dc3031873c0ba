package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome! Let's configure your lifelog search server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Embedding provider.
	providerPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{"openai", "ollama", "static (offline, low quality)"},
	}
	idx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	switch idx {
	case 0:
		cfg.Embedding.Provider = ProviderOpenAI
	case 1:
		cfg.Embedding.Provider = ProviderOllama
		modelPrompt := promptui.Prompt{
			Label:   "Ollama embedding model",
			Default: "nomic-embed-text",
		}
		if cfg.Embedding.Model, err = modelPrompt.Run(); err != nil {
			return nil, fmt.Errorf("model prompt: %w", err)
		}
	case 2:
		cfg.Embedding.Provider = ProviderStatic
		cfg.Embedding.Model = ""
	}

	// 2. Data directory.
	dataDirPrompt := promptui.Prompt{
		Label:   "Data directory",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataDirPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir prompt: %w", err)
	}

	// 3. Confidence threshold.
	thresholdPrompt := promptui.Prompt{
		Label:   "Confidence threshold for early accept (0-1)",
		Default: "0.8",
		Validate: func(s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || v < 0 || v > 1 {
				return fmt.Errorf("must be a number in [0,1]")
			}
			return nil
		},
	}
	thresholdStr, err := thresholdPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("threshold prompt: %w", err)
	}
	cfg.Search.ConfidenceThreshold, _ = strconv.ParseFloat(thresholdStr, 64)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("Set LIMITLESS_API_KEY to enable syncing from the Limitless API.")
	if cfg.Embedding.Provider == ProviderOpenAI {
		fmt.Println("Set OPENAI_API_KEY to enable OpenAI embeddings.")
	}
	return cfg, nil
}
