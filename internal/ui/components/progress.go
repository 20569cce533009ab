package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aquacheck/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a fraction in [0, 1].
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color // defaults to theme.Secondary
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 9 // "  100.00%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth)*p.Percent + 0.5)
	filled = max(0, min(filled, barWidth))

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %.2f%%", p.Percent*100))
	}

	return result
}
