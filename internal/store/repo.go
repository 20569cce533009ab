package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// PredictionEventData captures the outcome of one prediction request.
// Measured values are deliberately absent: samples are never persisted.
type PredictionEventData struct {
	RequestID    string
	Classifier   string
	Label        string // empty when the request failed
	Confidence   float64
	OutOfRange   []string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// PredictionEventRecord is a stored prediction event.
type PredictionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	PredictionEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendPrediction records a prediction request outcome.
	AppendPrediction(ctx context.Context, data PredictionEventData) error

	// QueryPredictions returns prediction events matching opts.
	QueryPredictions(ctx context.Context, opts QueryOpts) ([]PredictionEventRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events matching opts.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)
}
