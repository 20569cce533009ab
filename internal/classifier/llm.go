package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"text/template"
	"time"

	"github.com/abhisek/aquacheck/internal/llm"
	"github.com/abhisek/aquacheck/internal/quality"
)

// LLMConfig tunes the zero-shot scoring prompt.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration // 0 means no deadline beyond ctx
}

// DefaultLLMConfig returns sensible defaults.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:   128,
		Temperature: 0,
	}
}

// ScoreSchema is the JSON schema an LLM reply must satisfy.
var ScoreSchema = &llm.Schema{
	Name:        "potability-score",
	Description: "Probability that a water sample is not potable or potable",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"not_potable": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Probability that the sample is not safe to drink",
			},
			"potable": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Probability that the sample is safe to drink",
			},
		},
		"required":             []any{"not_potable", "potable"},
		"additionalProperties": false,
	},
}

// LLMScorer is a Classifier that asks a language model for the class
// probabilities.
type LLMScorer struct {
	provider llm.Provider
	cfg      LLMConfig
}

// NewLLMScorer creates an LLM-backed classifier.
func NewLLMScorer(provider llm.Provider, cfg LLMConfig) *LLMScorer {
	return &LLMScorer{provider: provider, cfg: cfg}
}

func (s *LLMScorer) Name() string {
	return "llm:" + s.provider.ModelID()
}

type scoreOutput struct {
	NotPotable float64 `json:"not_potable"`
	Potable    float64 `json:"potable"`
}

func (s *LLMScorer) PredictProba(ctx context.Context, features []float64) ([]float64, error) {
	ctx = llm.WithPurpose(ctx, "classify")
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	userMsg, err := buildScoreMessage(features)
	if err != nil {
		return nil, fmt.Errorf("build score prompt: %w", err)
	}

	reply, err := s.provider.Complete(ctx, llm.Prompt{
		System:      scoreSystemPrompt,
		User:        userMsg,
		Schema:      ScoreSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM scoring failed: %w", err)
	}

	var out scoreOutput
	if err := json.Unmarshal(reply.Content, &out); err != nil {
		return nil, fmt.Errorf("parse score response: %w", err)
	}
	return []float64{out.NotPotable, out.Potable}, nil
}

const scoreSystemPrompt = `You are a drinking-water quality analyst. Given laboratory measurements of a water sample, estimate the probability that the sample is potable.

Instructions:
- Return not_potable and potable as probabilities that sum to exactly 1.
- Judge from the measurements alone; do not assume missing context.
- Reply with the JSON object only.`

type featureLine struct {
	Name  string
	Key   string
	Value string
}

var scoreUserTemplate = template.Must(template.New("score").Parse(`Water sample measurements:
{{range .}}- {{.Name}} ({{.Key}}): {{.Value}}
{{end}}`))

func buildScoreMessage(features []float64) (string, error) {
	params := quality.Parameters()
	if len(features) != len(params) {
		return "", fmt.Errorf("expected %d features, got %d", len(params), len(features))
	}
	lines := make([]featureLine, len(params))
	for i, p := range params {
		lines[i] = featureLine{
			Name:  p.DisplayName(),
			Key:   string(p),
			Value: strconv.FormatFloat(features[i], 'g', -1, 64),
		}
	}

	var buf bytes.Buffer
	if err := scoreUserTemplate.Execute(&buf, lines); err != nil {
		return "", err
	}
	return buf.String(), nil
}
