package classifier

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/aquacheck/internal/llm"
	"github.com/abhisek/aquacheck/internal/store"
)

// Backend names.
const (
	BackendForest = "forest"
	BackendLLM    = "llm"
	BackendFixed  = "fixed"
)

// Config selects and configures the classifier backend.
type Config struct {
	Backend   string
	ModelPath string // forest artifact
	LLM       llm.Config
	Scoring   LLMConfig
	Fixed     [2]float64 // distribution answered by the fixed backend
}

// DefaultConfig returns the forest backend at DefaultModelPath.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendForest,
		ModelPath: DefaultModelPath,
		LLM:       llm.DefaultConfig(),
		Scoring:   DefaultLLMConfig(),
		Fixed:     [2]float64{0.5, 0.5},
	}
}

// ConfigFromEnv overlays AQUACHECK_CLASSIFIER and AQUACHECK_MODEL on the
// defaults. LLM settings come from llm.ConfigFromEnv, falling back to
// discovery of the standard provider API keys.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.LLM = llm.ConfigFromEnv()
	if cfg.LLM.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg.LLM = discovered
		}
	}
	if b := os.Getenv("AQUACHECK_CLASSIFIER"); b != "" {
		cfg.Backend = b
	}
	if p := os.Getenv("AQUACHECK_MODEL"); p != "" {
		cfg.ModelPath = p
	}
	return cfg
}

// Load builds the configured classifier. It runs once at startup; any
// failure is a *ModelLoadError. eventRepo, when non-nil, records LLM calls.
func Load(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Classifier, error) {
	switch cfg.Backend {
	case BackendForest, "":
		path := cfg.ModelPath
		if path == "" {
			path = DefaultModelPath
		}
		return LoadForest(path)
	case BackendLLM:
		provider, err := llm.NewProvider(ctx, cfg.LLM, eventRepo)
		if err != nil {
			return nil, &ModelLoadError{Path: "llm/" + cfg.LLM.Provider, Err: err}
		}
		scoring := cfg.Scoring
		if scoring.Timeout == 0 {
			scoring.Timeout = cfg.LLM.Timeout
		}
		return NewLLMScorer(provider, scoring), nil
	case BackendFixed:
		return NewFixed(cfg.Fixed[0], cfg.Fixed[1]), nil
	default:
		return nil, &ModelLoadError{Path: cfg.Backend, Err: fmt.Errorf("unknown classifier backend %q", cfg.Backend)}
	}
}
