package ranges

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aquacheck/internal/quality"
	"github.com/abhisek/aquacheck/internal/router"
	"github.com/abhisek/aquacheck/internal/screen"
	"github.com/abhisek/aquacheck/internal/ui/theme"
)

// RangesScreen shows the reference range table.
type RangesScreen struct {
	table quality.RangeTable
}

var _ screen.Screen = (*RangesScreen)(nil)

// New creates a RangesScreen for table.
func New(table quality.RangeTable) *RangesScreen {
	return &RangesScreen{table: table}
}

func (s *RangesScreen) Init() tea.Cmd {
	return nil
}

func (s *RangesScreen) Title() string {
	return "Reference Ranges"
}

func (s *RangesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *RangesScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Label.Render(fmt.Sprintf("%-18s %10s %10s", "Parameter", "Low", "High")))
	b.WriteString("\n")

	for _, e := range s.table.Entries() {
		line := fmt.Sprintf("%-18s %10g %10g", e.Parameter.DisplayName(), e.Range.Low, e.Range.High)
		if e.Range.Provisional {
			b.WriteString(theme.Warning.Render(line + " *"))
		} else {
			b.WriteString(theme.Body.Render(line))
		}
		b.WriteString("\n")
	}

	if len(s.table.Provisional()) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("* provisional: not yet confirmed against the WHO guidelines"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
