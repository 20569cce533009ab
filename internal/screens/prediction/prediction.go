package prediction

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aquacheck/internal/predict"
	"github.com/abhisek/aquacheck/internal/quality"
	"github.com/abhisek/aquacheck/internal/router"
	"github.com/abhisek/aquacheck/internal/screen"
	"github.com/abhisek/aquacheck/internal/ui/components"
	"github.com/abhisek/aquacheck/internal/ui/layout"
)

// columns is the number of input columns in the form grid.
const columns = 3

// predictionDoneMsg carries the outcome of a prediction request.
type predictionDoneMsg struct {
	Model *predict.RenderModel
	Err   error
}

// PredictionScreen is the form for entering a sample and viewing the result.
type PredictionScreen struct {
	svc      *predict.Service
	params   []quality.Parameter
	inputs   []components.TextInput
	focus    int // index into inputs; len(inputs) is the button
	fieldErr map[quality.Parameter]string
	pending  bool
	result   *predict.RenderModel
	errMsg   string
}

var _ screen.Screen = (*PredictionScreen)(nil)
var _ screen.KeyHintProvider = (*PredictionScreen)(nil)

// New creates a PredictionScreen backed by svc. Every field starts at 0.0.
func New(svc *predict.Service) *PredictionScreen {
	params := quality.Parameters()
	inputs := make([]components.TextInput, len(params))
	for i := range params {
		inputs[i] = components.NewTextInput("0.0", true, 12)
		inputs[i].SetValue("0.0")
	}
	return &PredictionScreen{
		svc:      svc,
		params:   params,
		inputs:   inputs,
		fieldErr: make(map[quality.Parameter]string),
	}
}

func (s *PredictionScreen) Init() tea.Cmd {
	return s.inputs[0].Focus()
}

func (s *PredictionScreen) Title() string {
	return "Water Potability Prediction"
}

func (s *PredictionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "Enter", Description: "Next / Predict"},
		{Key: "Ctrl+R", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PredictionScreen) onButton() bool {
	return s.focus == len(s.inputs)
}

func (s *PredictionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case predictionDoneMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.result = nil
		} else {
			s.errMsg = ""
			s.result = msg.Model
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "ctrl+r":
			return s, s.reset()
		case "enter":
			if s.onButton() {
				return s, s.submit()
			}
			return s, s.moveFocus(1)
		}
	}

	if s.onButton() {
		return s, nil
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *PredictionScreen) moveFocus(delta int) tea.Cmd {
	if !s.onButton() {
		s.inputs[s.focus].Blur()
	}
	n := len(s.inputs) + 1
	s.focus = ((s.focus+delta)%n + n) % n
	if s.onButton() {
		return nil
	}
	return s.inputs[s.focus].Focus()
}

func (s *PredictionScreen) reset() tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].SetValue("0.0")
	}
	s.fieldErr = make(map[quality.Parameter]string)
	s.result = nil
	s.errMsg = ""
	return nil
}

// collect parses every field. Field errors are kept for display and a nil
// sample is returned if any field is invalid.
func (s *PredictionScreen) collect() quality.Sample {
	s.fieldErr = make(map[quality.Parameter]string)
	sample := make(quality.Sample, len(s.params))

	for i, p := range s.params {
		v, err := s.inputs[i].FloatValue()
		if err != nil {
			s.fieldErr[p] = err.Error()
			continue
		}
		sample[p] = v
	}
	for _, ie := range quality.ValidateInput(sample) {
		s.fieldErr[ie.Parameter] = ie.Reason
	}

	for i, p := range s.params {
		_, bad := s.fieldErr[p]
		s.inputs[i].Submit(!bad)
	}
	if len(s.fieldErr) > 0 {
		return nil
	}
	return sample
}

func (s *PredictionScreen) submit() tea.Cmd {
	if s.pending {
		return nil
	}
	sample := s.collect()
	if sample == nil {
		s.result = nil
		s.errMsg = fmt.Sprintf("%d field(s) need attention", len(s.fieldErr))
		return nil
	}

	s.pending = true
	s.errMsg = ""
	svc := s.svc
	return func() tea.Msg {
		model, err := svc.Handle(context.Background(), sample)
		return predictionDoneMsg{Model: model, Err: err}
	}
}
