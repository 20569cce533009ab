package predict

import (
	"fmt"

	"github.com/abhisek/aquacheck/internal/classifier"
	"github.com/abhisek/aquacheck/internal/quality"
)

// RenderModel is everything a shell needs to present one prediction.
type RenderModel struct {
	RequestID      string
	Label          classifier.Label
	Confidence     float64
	ConfidenceText string
	OutOfRange     []quality.Parameter

	// Provisional lists the out-of-range parameters whose reference range
	// has not been confirmed against the WHO guidelines.
	Provisional []quality.Parameter
}

// PredictionMessage is the one-line classification summary.
func (m *RenderModel) PredictionMessage() string {
	return fmt.Sprintf("This water sample is likely %s with a confidence level of %s%%.",
		m.Label, m.ConfidenceText)
}

// ComplianceMessage summarizes the range check.
func (m *RenderModel) ComplianceMessage() string {
	if len(m.OutOfRange) == 0 {
		return "All parameters are within WHO-recommended ranges for potable water."
	}
	return "And, the following parameters are outside WHO-recommended ranges for potable water: " +
		quality.JoinParameters(m.OutOfRange) + "."
}

// Compliant reports whether every tabled parameter was within range.
func (m *RenderModel) Compliant() bool {
	return len(m.OutOfRange) == 0
}
