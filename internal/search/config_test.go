package search

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }},
		{"threshold above one", func(c *Config) { c.ConfidenceThreshold = 1.5 }},
		{"negative threshold", func(c *Config) { c.ConfidenceThreshold = -0.1 }},
		{"zero strategy timeout", func(c *Config) { c.StrategyTimeout = 0 }},
		{"deadline shorter than strategy timeout", func(c *Config) {
			c.StrategyTimeout = 5 * time.Second
			c.OverallDeadline = time.Second
		}},
		{"zero max results", func(c *Config) { c.MaxResults = 0 }},
		{"unknown strategy in weights", func(c *Config) {
			c.Weights = map[Strategy]float64{Strategy("fast-keywrod"): 1.0}
		}},
		{"negative weight", func(c *Config) {
			c.Weights = map[Strategy]float64{StrategyFastKeyword: -1}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range AllStrategies {
		got, err := ParseStrategy(string(s))
		if err != nil {
			t.Errorf("ParseStrategy(%q) error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStrategy(%q) = %q", s, got)
		}
	}

	if _, err := ParseStrategy("keyword"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseStrategy(\"keyword\") error = %v, want ErrInvalidConfig", err)
	}
}

func TestWeightForFallsBackToDefaults(t *testing.T) {
	cfg := Config{Weights: map[Strategy]float64{StrategyFastKeyword: 0.5}}
	if got := cfg.weightFor(StrategyFastKeyword); got != 0.5 {
		t.Errorf("configured weight = %g, want 0.5", got)
	}
	if got := cfg.weightFor(StrategyRecency); got != defaultWeights[StrategyRecency] {
		t.Errorf("fallback weight = %g, want default %g", got, defaultWeights[StrategyRecency])
	}
}
