package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/aquacheck/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and (when eventRepo is non-nil) event logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		pc := cfg.OpenRouter
		if pc.BaseURL == "" {
			pc.BaseURL = defaultOpenRouterBaseURL
		}
		base, err = NewOpenAIProvider(pc)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	if eventRepo != nil {
		base = WithLogging(base, cfg.Provider, eventRepo)
	}
	return WithRetry(base, cfg.Retry), nil
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
