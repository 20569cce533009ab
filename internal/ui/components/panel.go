package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aquacheck/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all panel sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for panel border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// PanelFrame wraps content in a double-border frame, centering it
// vertically and horizontally within the given dimensions.
func PanelFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card sized to the content.
func Card(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Render(content)
}

// MenuButton renders a fixed-width bordered button.
func MenuButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}
