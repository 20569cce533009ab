package classifier

import (
	"fmt"
	"strings"

	"github.com/abhisek/aquacheck/internal/quality"
)

// ModelLoadError means the classifier could not be loaded at startup.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// MissingFeatureError lists the parameters a sample lacks.
type MissingFeatureError struct {
	Missing []quality.Parameter
}

func (e *MissingFeatureError) Error() string {
	names := make([]string, len(e.Missing))
	for i, p := range e.Missing {
		names[i] = string(p)
	}
	return "missing features: " + strings.Join(names, ", ")
}

// InferenceError wraps a failure of the classifier itself, including a
// malformed probability distribution.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
