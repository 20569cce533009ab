package prediction

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aquacheck/internal/classifier"
	"github.com/abhisek/aquacheck/internal/quality"
	"github.com/abhisek/aquacheck/internal/ui/components"
	"github.com/abhisek/aquacheck/internal/ui/theme"
)

const (
	columnWidth    = 24
	resultBarWidth = 60
)

func (s *PredictionScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Label.Render("Enter Water Quality Parameters:"))
	sections = append(sections, s.renderGrid())
	sections = append(sections, components.NewButton("Predict Potability", s.onButton(), nil).View())

	switch {
	case s.pending:
		sections = append(sections, theme.Hint.Render("Predicting..."))
	case s.errMsg != "":
		sections = append(sections, theme.ErrorText.Render("Error: "+s.errMsg))
	case s.result != nil:
		sections = append(sections, s.renderResult())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(content))
}

// renderGrid lays the inputs out column by column, three per column.
func (s *PredictionScreen) renderGrid() string {
	rows := (len(s.params) + columns - 1) / columns
	cols := make([]string, 0, columns)

	for c := 0; c < columns; c++ {
		var cells []string
		for r := 0; r < rows; r++ {
			i := c*rows + r
			if i >= len(s.params) {
				break
			}
			cells = append(cells, s.renderField(i))
		}
		cols = append(cols, lipgloss.NewStyle().Width(columnWidth).Render(strings.Join(cells, "\n\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (s *PredictionScreen) renderField(i int) string {
	p := s.params[i]
	label := theme.Unselected.Render(p.DisplayName())
	if i == s.focus {
		label = theme.Selected.Render("▸ " + p.DisplayName())
	}

	line := label + "\n" + s.inputs[i].View()
	if msg, ok := s.fieldErr[p]; ok {
		line += "\n" + theme.ErrorText.Render(msg)
	}
	return line
}

func (s *PredictionScreen) renderResult() string {
	m := s.result

	labelStyle := theme.NotPotable
	fill := theme.Error
	if m.Label == classifier.Potable {
		labelStyle = theme.Potable
		fill = theme.Success
	}

	lines := []string{
		labelStyle.Render(m.PredictionMessage()),
		components.ProgressBar{
			Label:       "Confidence",
			Percent:     m.Confidence / 100,
			ShowPercent: true,
			Width:       resultBarWidth,
			Fill:        fill,
		}.View(),
		"",
	}

	if m.Compliant() {
		lines = append(lines, theme.Potable.Render(m.ComplianceMessage()))
	} else {
		lines = append(lines, theme.Warning.Render(m.ComplianceMessage()))
	}
	if len(m.Provisional) > 0 {
		lines = append(lines, theme.Hint.Render(
			"Provisional reference range: "+quality.JoinParameters(m.Provisional)))
	}

	return components.Card(strings.Join(lines, "\n"))
}
