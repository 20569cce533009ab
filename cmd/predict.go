package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/abhisek/aquacheck/internal/predict"
	"github.com/abhisek/aquacheck/internal/quality"
	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Classify one water sample",
	Long: "Classify one water sample given on the command line, e.g.\n\n" +
		"  aquacheck predict --ph 7 --hardness 90 --solids 400 --chloramines 2 \\\n" +
		"    --sulfate 300 --conductivity 200 --organic-carbon 2 \\\n" +
		"    --trihalomethanes 0.09 --turbidity 2",
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, err := sampleFromFlags(cmd)
		if err != nil {
			return err
		}

		rt, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		model, err := rt.service.Handle(cmd.Context(), sample)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return writePredictionJSON(cmd.OutOrStdout(), model)
		}
		writePredictionText(cmd.OutOrStdout(), model)
		return nil
	},
}

// sampleFromFlags builds a sample from the parameter flags that were set.
// Unset parameters are left out so the classifier reports them as missing.
func sampleFromFlags(cmd *cobra.Command) (quality.Sample, error) {
	sample := make(quality.Sample)
	for _, p := range quality.Parameters() {
		if !cmd.Flags().Changed(p.FlagName()) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(p.FlagName())
		if err != nil {
			return nil, err
		}
		sample[p] = v
	}

	var errs []error
	for _, ie := range quality.ValidateInput(sample) {
		errs = append(errs, ie)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return sample, nil
}

func writePredictionText(w io.Writer, m *predict.RenderModel) {
	fmt.Fprintln(w, m.PredictionMessage())
	fmt.Fprintln(w, m.ComplianceMessage())
	if len(m.Provisional) > 0 {
		fmt.Fprintf(w, "Provisional reference range: %s\n", quality.JoinParameters(m.Provisional))
	}
}

type predictionJSON struct {
	RequestID      string   `json:"request_id"`
	Label          string   `json:"label"`
	Confidence     float64  `json:"confidence"`
	ConfidenceText string   `json:"confidence_text"`
	OutOfRange     []string `json:"out_of_range"`
	Provisional    []string `json:"provisional"`
	Prediction     string   `json:"prediction_message"`
	Compliance     string   `json:"compliance_message"`
}

func writePredictionJSON(w io.Writer, m *predict.RenderModel) error {
	out := predictionJSON{
		RequestID:      m.RequestID,
		Label:          m.Label.String(),
		Confidence:     m.Confidence,
		ConfidenceText: m.ConfidenceText,
		OutOfRange:     names(m.OutOfRange),
		Provisional:    names(m.Provisional),
		Prediction:     m.PredictionMessage(),
		Compliance:     m.ComplianceMessage(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func names(params []quality.Parameter) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = string(p)
	}
	return out
}

func init() {
	for _, p := range quality.Parameters() {
		predictCmd.Flags().Float64(p.FlagName(), 0, p.DisplayName())
	}
	predictCmd.Flags().Bool("json", false, "Print the result as JSON")
}
