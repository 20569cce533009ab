package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aquacheck/internal/router"
	"github.com/abhisek/aquacheck/internal/screen"
	"github.com/abhisek/aquacheck/internal/store"
	"github.com/abhisek/aquacheck/internal/ui/layout"
	"github.com/abhisek/aquacheck/internal/ui/theme"
)

// pageSize bounds how many past predictions are loaded.
const pageSize = 50

// PredictionQuerier is the read side of the event log this screen needs.
type PredictionQuerier interface {
	QueryPredictions(ctx context.Context, opts store.QueryOpts) ([]store.PredictionEventRecord, error)
}

type historyLoadedMsg struct {
	Events []store.PredictionEventRecord
	Err    error
}

// HistoryScreen lists recent prediction outcomes.
type HistoryScreen struct {
	events   PredictionQuerier
	records  []store.PredictionEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events PredictionQuerier) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		recs, err := events.QueryPredictions(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Events: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No predictions yet. Try the Prediction Page!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+summaryLine(rec))))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range detailLines(rec) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func summaryLine(rec store.PredictionEventRecord) string {
	when := rec.Timestamp.Local().Format("Jan 02 15:04:05")
	if !rec.Success {
		return fmt.Sprintf("%s  failed", when)
	}
	flagged := "all in range"
	if n := len(rec.OutOfRange); n > 0 {
		flagged = fmt.Sprintf("%d out of range", n)
	}
	return fmt.Sprintf("%s  %-11s  %6.2f%%  %s", when, rec.Label, rec.Confidence, flagged)
}

func detailLines(rec store.PredictionEventRecord) []string {
	lines := []string{
		"request " + rec.RequestID,
		fmt.Sprintf("classifier %s, %d ms", rec.Classifier, rec.LatencyMs),
	}
	if len(rec.OutOfRange) > 0 {
		lines = append(lines, "outside WHO ranges: "+strings.Join(rec.OutOfRange, ", "))
	}
	if rec.ErrorMessage != "" {
		lines = append(lines, "error: "+rec.ErrorMessage)
	}
	return lines
}
