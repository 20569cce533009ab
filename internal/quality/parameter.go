package quality

import (
	"fmt"
	"strings"
)

// Parameter identifies a measured water-quality parameter. The string
// value is the column name the classifier was trained with.
type Parameter string

const (
	PH              Parameter = "ph"
	Hardness        Parameter = "Hardness"
	Solids          Parameter = "Solids"
	Chloramines     Parameter = "Chloramines"
	Sulfate         Parameter = "Sulfate"
	Conductivity    Parameter = "Conductivity"
	OrganicCarbon   Parameter = "Organic_carbon"
	Trihalomethanes Parameter = "Trihalomethanes"
	Turbidity       Parameter = "Turbidity"
)

// allParameters is the classifier's feature order.
var allParameters = []Parameter{
	PH,
	Hardness,
	Solids,
	Chloramines,
	Sulfate,
	Conductivity,
	OrganicCarbon,
	Trihalomethanes,
	Turbidity,
}

var displayNames = map[Parameter]string{
	PH:              "pH Level",
	Hardness:        "Hardness",
	Solids:          "Solids",
	Chloramines:     "Chloramines",
	Sulfate:         "Sulfate",
	Conductivity:    "Conductivity",
	OrganicCarbon:   "Organic Carbon",
	Trihalomethanes: "Trihalomethanes",
	Turbidity:       "Turbidity",
}

// Parameters returns every parameter in the fixed feature order.
func Parameters() []Parameter {
	out := make([]Parameter, len(allParameters))
	copy(out, allParameters)
	return out
}

// DisplayName returns the human-readable input label.
func (p Parameter) DisplayName() string {
	if n, ok := displayNames[p]; ok {
		return n
	}
	return string(p)
}

// FlagName returns the kebab-case name used for CLI flags.
func (p Parameter) FlagName() string {
	return strings.ReplaceAll(strings.ToLower(string(p)), "_", "-")
}

// ParseParameter resolves a parameter from its key, flag name or display
// name, case-insensitively.
func ParseParameter(s string) (Parameter, error) {
	norm := normalizeName(s)
	for _, p := range allParameters {
		if norm == normalizeName(string(p)) || norm == normalizeName(p.DisplayName()) {
			return p, nil
		}
	}
	return "",fmt.Errorf("unknown parameter %q", s)
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return r.Replace(s)
}

// Sample maps parameters to measured values for a single request.
type Sample map[Parameter]float64

// Clone returns an independent copy of the sample.
func (s Sample) Clone() Sample {
	out := make(Sample, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
