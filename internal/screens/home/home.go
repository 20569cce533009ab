package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aquacheck/internal/predict"
	"github.com/abhisek/aquacheck/internal/router"
	"github.com/abhisek/aquacheck/internal/screen"
	"github.com/abhisek/aquacheck/internal/screens/history"
	"github.com/abhisek/aquacheck/internal/screens/landing"
	"github.com/abhisek/aquacheck/internal/screens/placeholder"
	"github.com/abhisek/aquacheck/internal/screens/prediction"
	"github.com/abhisek/aquacheck/internal/screens/ranges"
	"github.com/abhisek/aquacheck/internal/store"
	"github.com/abhisek/aquacheck/internal/ui/components"
	"github.com/abhisek/aquacheck/internal/ui/theme"
)

const (
	titleFull    = "Water Potability Prediction"
	titleCompact = "AQUACHECK"
	buttonWidth  = 24
)

// HomeScreen is the navigation menu.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string
	classifier string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the navigation menu. eventRepo may be nil, in which case the
// history entry shows a placeholder.
func New(svc *predict.Service, eventRepo store.EventRepo) *HomeScreen {
	menuLabels := []string{"LANDING PAGE", "PREDICTION PAGE", "HISTORY", "REFERENCE RANGES", "EXIT"}

	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return push(landing.New(nil))
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return push(prediction.New(svc))
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			if eventRepo == nil {
				return push(placeholder.New("History", "No event store is open, so past predictions are unavailable."))
			}
			return push(history.New(eventRepo))
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return push(ranges.New(svc.Ranges()))
		}},
		{Label: menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		classifier: svc.ClassifierName(),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := height < 22 || width < 100

	title := titleFull
	if compact {
		title = titleCompact
	}

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render(title))
	if !compact {
		sections = append(sections, theme.Subtitle.Width(cw).Render("Navigation"))
	}

	var buttons []string
	for i, label := range h.menuLabels {
		if compact {
			line := "   " + label
			if i == h.menu.Selected {
				line = theme.Selected.Render(" ▸ " + label)
			}
			buttons = append(buttons, line)
			continue
		}
		buttons = append(buttons, components.MenuButton(label, i == h.menu.Selected, buttonWidth))
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n")))

	sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).
		Render("classifier: "+h.classifier))

	return components.PanelFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
