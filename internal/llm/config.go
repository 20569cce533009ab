package llm

import (
	"fmt"
	"os"
	"time"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend: "anthropic", "openai", "gemini",
	// "openrouter" or "mock".
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds a single scoring call including retries.
	Timeout time.Duration
}

// ProviderConfig holds the credentials and model for one provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional; OpenAI-compatible providers only
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from AQUACHECK_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("AQUACHECK_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	overlay := func(pc *ProviderConfig, prefix string) {
		if k := os.Getenv(prefix + "_API_KEY"); k != "" {
			pc.APIKey = k
		}
		if m := os.Getenv(prefix + "_MODEL"); m != "" {
			pc.Model = m
		}
		if u := os.Getenv(prefix + "_BASE_URL"); u != "" {
			pc.BaseURL = u
		}
	}
	overlay(&cfg.Anthropic, "AQUACHECK_ANTHROPIC")
	overlay(&cfg.OpenAI, "AQUACHECK_OPENAI")
	overlay(&cfg.Gemini, "AQUACHECK_GEMINI")
	overlay(&cfg.OpenRouter, "AQUACHECK_OPENROUTER")

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var pc ProviderConfig
	switch c.Provider {
	case "anthropic":
		pc = c.Anthropic
	case "openai":
		pc = c.OpenAI
	case "gemini":
		pc = c.Gemini
	case "openrouter":
		pc = c.OpenRouter
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("an API key is required for the %s provider", c.Provider)
	}
	return nil
}
