// Package predict handles a single potability request: it classifies the
// sample, checks it against the reference ranges and builds the view
// model the shells render.
package predict

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/aquacheck/internal/classifier"
	"github.com/abhisek/aquacheck/internal/quality"
	"github.com/abhisek/aquacheck/internal/store"
)

// Config is built once at startup and shared read-only by every request.
type Config struct {
	Ranges     quality.RangeTable
	Classifier classifier.Classifier
}

// EventRecorder persists prediction outcomes. store.EventRepo satisfies it.
type EventRecorder interface {
	AppendPrediction(ctx context.Context, data store.PredictionEventData) error
}

// Service answers prediction requests.
type Service struct {
	ranges  quality.RangeTable
	adapter *classifier.Adapter
	events  EventRecorder
}

// NewService creates a Service. events may be nil.
func NewService(cfg *Config, events EventRecorder) *Service {
	return &Service{
		ranges:  cfg.Ranges,
		adapter: classifier.NewAdapter(cfg.Classifier),
		events:  events,
	}
}

// ClassifierName returns the name of the loaded classifier.
func (s *Service) ClassifierName() string {
	return s.adapter.Name()
}

// Ranges returns the reference table requests are checked against.
func (s *Service) Ranges() quality.RangeTable {
	return s.ranges
}

// Handle classifies the sample and checks it against the reference
// ranges. Either both succeed or the request fails as a whole.
func (s *Service) Handle(ctx context.Context, sample quality.Sample) (*RenderModel, error) {
	start := time.Now()
	requestID := uuid.NewString()

	outOfRange := quality.CheckRanges(s.ranges, sample)
	res, err := s.adapter.Classify(ctx, sample)

	data := store.PredictionEventData{
		RequestID:  requestID,
		Classifier: s.adapter.Name(),
		OutOfRange: parameterNames(outOfRange),
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		s.record(ctx, data)
		return nil, err
	}
	data.Label = res.Label.String()
	data.Confidence = res.Confidence
	s.record(ctx, data)

	return &RenderModel{
		RequestID:      requestID,
		Label:          res.Label,
		Confidence:     res.Confidence,
		ConfidenceText: res.ConfidenceText(),
		OutOfRange:     outOfRange,
		Provisional:    provisionalOf(s.ranges, outOfRange),
	}, nil
}

func (s *Service) record(ctx context.Context, data store.PredictionEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendPrediction(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log prediction event: %v\n", err)
	}
}

func parameterNames(params []quality.Parameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = string(p)
	}
	return names
}

func provisionalOf(table quality.RangeTable, params []quality.Parameter) []quality.Parameter {
	var out []quality.Parameter
	for _, p := range params {
		if r, ok := table.Lookup(p); ok && r.Provisional {
			out = append(out, p)
		}
	}
	return out
}
