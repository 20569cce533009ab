package landing

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aquacheck/internal/router"
	"github.com/abhisek/aquacheck/internal/screen"
	"github.com/abhisek/aquacheck/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const (
	pageTitle   = "Welcome to the Water Quality Prediction App"
	byline      = "Developed by Martin Makawa and Blessings Nyirenda"
	description = "This app predicts whether water is potable or not based on your water quality\n" +
		"parameters. Use the Prediction Page to interact with the model and see the\n" +
		"predictions in real-time."
)

const dropArt = `      ▄
     ███
    █████
   ███████
  █████████
  █████████
   ███████
    ▀▀▀▀▀`

// ripple frames cycle beside the drop
var rippleFrames = []string{"~", "≈"}

type tickMsg time.Time

// LandingScreen shows the logo, title and app description. Any key moves on
// to the screen produced by next.
type LandingScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*LandingScreen)(nil)

// New creates a LandingScreen that continues to the screen produced by next.
// A nil next makes the screen static, which is how it is shown when
// revisited from the navigation menu.
func New(next func() screen.Screen) *LandingScreen {
	return &LandingScreen{next: next}
}

func (l *LandingScreen) Title() string {
	if l.next == nil {
		return "Landing Page"
	}
	return ""
}

func (l *LandingScreen) Init() tea.Cmd {
	if l.next == nil {
		l.elapsed = totalDur
		return nil
	}
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (l *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if l.elapsed < totalDur {
			l.elapsed += tickInterval
		}
		l.tickCount++
		if l.transitioned {
			return l, nil
		}
		return l, tick()

	case tea.KeyPressMsg:
		return l, l.transition()
	}

	return l, nil
}

func (l *LandingScreen) transition() tea.Cmd {
	if l.transitioned || l.next == nil {
		return nil
	}
	l.transitioned = true
	nextScreen := l.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: nextScreen}
	}
}

func (l *LandingScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(dropArt)

	// Phase 2+: ripples beside the drop
	if l.elapsed >= phase1End {
		ripple := rippleFrames[l.tickCount%len(rippleFrames)]
		rs := lipgloss.NewStyle().Foreground(theme.Secondary).Render(ripple + ripple)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 5 {
			lines[5] = rs + "  " + lines[5] + "  " + rs
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	// Phase 3+: banner, title and description
	if l.elapsed >= phase2End {
		sections = append(sections,
			RenderBanner(width),
			"",
			theme.Title.Render(pageTitle),
			lipgloss.NewStyle().Foreground(theme.Text).Render(byline),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Align(lipgloss.Center).Render(description),
		)
		if l.next != nil {
			sections = append(sections, "", theme.Hint.Render("press any key to continue"))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
