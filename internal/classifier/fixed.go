package classifier

import (
	"context"
	"sync"
)

// Fixed is a Classifier that always returns the same distribution and
// records the feature vectors it was called with.
type Fixed struct {
	mu    sync.Mutex
	proba []float64
	err   error
	Calls [][]float64
}

// NewFixed returns a classifier that answers [pNotPotable, pPotable].
func NewFixed(pNotPotable, pPotable float64) *Fixed {
	return &Fixed{proba: []float64{pNotPotable, pPotable}}
}

// NewFixedDistribution returns a classifier that answers proba verbatim,
// whatever its shape.
func NewFixedDistribution(proba ...float64) *Fixed {
	return &Fixed{proba: proba}
}

// NewFailing returns a classifier whose every call fails with err.
func NewFailing(err error) *Fixed {
	return &Fixed{err: err}
}

func (f *Fixed) Name() string { return "fixed" }

func (f *Fixed) PredictProba(_ context.Context, features []float64) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, append([]float64(nil), features...))
	if f.err != nil {
		return nil, f.err
	}
	return append([]float64(nil), f.proba...), nil
}

// CallCount returns the number of PredictProba calls made.
func (f *Fixed) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
