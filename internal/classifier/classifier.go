// Package classifier turns a potability model's probability distribution
// into a label and a confidence percentage.
package classifier

import (
	"context"
	"fmt"
	"math"

	"github.com/abhisek/aquacheck/internal/quality"
)

// Classifier is a loaded potability model. PredictProba returns
// [p_not_potable, p_potable] for a feature vector in the order given by
// quality.Parameters.
type Classifier interface {
	Name() string
	PredictProba(ctx context.Context, features []float64) ([]float64, error)
}

// Label is the binary potability outcome.
type Label int

const (
	NotPotable Label = iota
	Potable
)

func (l Label) String() string {
	if l == Potable {
		return "potable"
	}
	return "not potable"
}

// probabilityTolerance bounds how far p0+p1 may drift from 1.
const probabilityTolerance = 1e-6

// Result is the outcome of classifying one sample.
type Result struct {
	Label         Label
	Confidence    float64 // winning probability as a percentage, 0–100
	Probabilities [2]float64
}

// ConfidenceText formats the confidence with two decimals.
func (r Result) ConfidenceText() string {
	return fmt.Sprintf("%.2f", r.Confidence)
}

// FeatureVector assembles the sample into the classifier's fixed feature
// order. Every absent parameter is listed in the returned error.
func FeatureVector(sample quality.Sample) ([]float64, error) {
	params := quality.Parameters()
	vec := make([]float64, 0, len(params))
	var missing []quality.Parameter
	for _, p := range params {
		v, ok := sample[p]
		if !ok {
			missing = append(missing, p)
			continue
		}
		vec = append(vec, v)
	}
	if len(missing) > 0 {
		return nil, &MissingFeatureError{Missing: missing}
	}
	return vec, nil
}

// Adapter wraps a Classifier and applies the labeling rules.
type Adapter struct {
	clf Classifier
}

// NewAdapter creates an Adapter over clf.
func NewAdapter(clf Classifier) *Adapter {
	return &Adapter{clf: clf}
}

// Name returns the underlying classifier's name.
func (a *Adapter) Name() string {
	return a.clf.Name()
}

// Classify runs inference for one sample. The sample is labeled potable
// only when p_potable is strictly greater than p_not_potable, so an even
// split resolves to not potable.
func (a *Adapter) Classify(ctx context.Context, sample quality.Sample) (Result, error) {
	features, err := FeatureVector(sample)
	if err != nil {
		return Result{}, err
	}

	proba, err := a.clf.PredictProba(ctx, features)
	if err != nil {
		return Result{}, &InferenceError{Err: err}
	}
	if err := checkDistribution(proba); err != nil {
		return Result{}, &InferenceError{Err: err}
	}

	res := Result{
		Label:         NotPotable,
		Confidence:    proba[0] * 100,
		Probabilities: [2]float64{proba[0], proba[1]},
	}
	if proba[1] > proba[0] {
		res.Label = Potable
		res.Confidence = proba[1] * 100
	}
	return res, nil
}

func checkDistribution(p []float64) error {
	if len(p) != 2 {
		return fmt.Errorf("expected 2 class probabilities, got %d", len(p))
	}
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
			return fmt.Errorf("probability %d out of [0, 1]: %v", i, v)
		}
	}
	if math.Abs(p[0]+p[1]-1) > probabilityTolerance {
		return fmt.Errorf("probabilities sum to %v, not 1", p[0]+p[1])
	}
	return nil
}
