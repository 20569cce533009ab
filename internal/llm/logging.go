package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/aquacheck/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. name is the provider
// name recorded with each event.
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, name: name, eventRepo: repo}
}

func (l *LoggingProvider) Complete(ctx context.Context, pr Prompt) (*Reply, error) {
	start := time.Now()
	reply, err := l.inner.Complete(ctx, pr)

	data := store.LLMRequestEventData{
		Provider:  l.name,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if reply != nil {
		data.InputTokens = reply.Usage.InputTokens
		data.OutputTokens = reply.Usage.OutputTokens
		if reply.Model != "" {
			data.Model = reply.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Logging failures never fail the request.
	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return reply, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
