package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/aquacheck/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	r1, err := mock.Complete(context.Background(), Prompt{User: "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(r1.Content) != `{"a":1}` || r1.Usage.InputTokens != 10 {
		t.Fatalf("unexpected first reply: %+v", r1)
	}

	r2, err := mock.Complete(context.Background(), Prompt{User: "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(r2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", r2.Content)
	}
	if mock.CallCount() != 2 || mock.Calls[1].User != "second" {
		t.Fatalf("calls not recorded: %+v", mock.Calls)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	_, err := NewMockProvider().Complete(context.Background(), Prompt{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"potable":0.7}`)})
	_, err := mock.Complete(context.Background(), Prompt{Schema: scoreSchema()})
	var inv *ErrInvalidReply
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidReply, got: %T (%v)", err, err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "classify")
	if p := PurposeFrom(ctx); p != "classify" {
		t.Fatalf("expected 'classify', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: ProviderConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: ProviderConfig{APIKey: "sk-or"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("AQUACHECK_LLM_PROVIDER", "openai")
	t.Setenv("AQUACHECK_OPENAI_API_KEY", "sk-env")
	t.Setenv("AQUACHECK_OPENAI_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" || cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Fatalf("defaults should survive, got %q", cfg.Anthropic.Model)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("expected anthropic to win, got %+v (ok=%v)", cfg, ok)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "gemini"}, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"not_potable":0.4,"potable":0.6}`), Usage: Usage{InputTokens: 30, OutputTokens: 8}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", st.EventRepo())
	ctx := WithPurpose(context.Background(), "classify")

	if _, err := p.Complete(ctx, Prompt{Schema: scoreSchema()}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Complete(ctx, Prompt{}); err == nil {
		t.Fatal("second call should fail")
	}

	events, err := st.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	failed, ok := events[0], events[1]
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("expected failed event first, got %+v", failed)
	}
	if !ok.Success || ok.InputTokens != 30 || ok.Purpose != "classify" || ok.Provider != "mock" {
		t.Errorf("unexpected success event: %+v", ok)
	}
}
