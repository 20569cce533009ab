package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidReply indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidReply struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidReply) Error() string {
	return fmt.Sprintf("invalid LLM reply: %v", e.Err)
}

func (e *ErrInvalidReply) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrTruncated indicates the reply hit the MaxTokens limit before the
// JSON object was complete.
type ErrTruncated struct {
	Content json.RawMessage
}

func (e *ErrTruncated) Error() string {
	return "LLM reply truncated: max tokens exceeded"
}
