package quality

import (
	"fmt"
	"math"
	"strings"
)

// CheckRanges returns the tabled parameters whose sample value falls
// outside the reference range, in table order. Parameters missing from
// the sample are skipped and untabled sample keys are never reported.
//
// A NaN value is always reported: it fails both bound comparisons.
func CheckRanges(table RangeTable, sample Sample) []Parameter {
	var out []Parameter
	for _, e := range table.entries {
		v, ok := sample[e.Parameter]
		if !ok {
			continue
		}
		if !e.Range.Contains(v) {
			out = append(out, e.Parameter)
		}
	}
	return out
}

// JoinParameters renders parameters as a comma-separated list of keys.
func JoinParameters(params []Parameter) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// MaxPH is the upper bound accepted for pH input.
const MaxPH = 14.0

// InputError describes a value the input form would not accept.
type InputError struct {
	Parameter Parameter
	Value     float64
	Reason    string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %g %s", e.Parameter.DisplayName(), e.Value, e.Reason)
}

// ValidateInput applies the form constraints: every value must be a
// finite number >= 0 and pH must not exceed 14. It returns one error per
// offending parameter in feature order.
func ValidateInput(sample Sample) []*InputError {
	var errs []*InputError
	for _, p := range allParameters {
		v, ok := sample[p]
		if !ok {
			continue
		}
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			errs = append(errs, &InputError{Parameter: p, Value: v, Reason: "is not a finite number"})
		case v < 0:
			errs = append(errs, &InputError{Parameter: p, Value: v, Reason: "must be at least 0"})
		case p == PH && v > MaxPH:
			errs = append(errs, &InputError{Parameter: p, Value: v, Reason: fmt.Sprintf("must be at most %g", MaxPH)})
		}
	}
	return errs
}
