package landing

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aquacheck/internal/router"
	"github.com/abhisek/aquacheck/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "menu" }
func (s *stubScreen) Title() string                           { return "Menu" }

func newTestLandingWithCounter() (*LandingScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(l *LandingScreen, n int) {
	var s screen.Screen = l
	for i := 0; i < n; i++ {
		s, _ = s.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	l, _ := newTestLandingWithCounter()

	if strings.Contains(l.View(120, 40), pageTitle) {
		t.Error("title should not be visible at start")
	}

	sendTicks(l, 5)
	if l.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", l.elapsed)
	}

	sendTicks(l, 10)
	view := l.View(120, 40)
	if !strings.Contains(view, pageTitle) {
		t.Error("title should be visible after phase 2")
	}
	if !strings.Contains(view, "Martin Makawa") {
		t.Error("byline should be visible after phase 2")
	}
	if !strings.Contains(view, "press any key") {
		t.Error("continue hint should be visible")
	}
}

func TestKeypressDuringAnimationTransitions(t *testing.T) {
	l, callCount := newTestLandingWithCounter()
	sendTicks(l, 3)

	_, cmd := l.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	l, callCount := newTestLandingWithCounter()

	sendTicks(l, 45)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if l.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, l.elapsed)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	l, callCount := newTestLandingWithCounter()

	l.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := l.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestStaticLanding(t *testing.T) {
	l := New(nil)
	if cmd := l.Init(); cmd != nil {
		t.Error("static landing should not animate")
	}
	if l.Title() != "Landing Page" {
		t.Errorf("unexpected title %q", l.Title())
	}

	view := l.View(120, 40)
	if !strings.Contains(view, pageTitle) {
		t.Error("static landing should show the title immediately")
	}
	if strings.Contains(view, "press any key") {
		t.Error("static landing should not offer to continue")
	}
	if _, cmd := l.Update(tea.KeyPressMsg{Code: ' '}); cmd != nil {
		t.Error("static landing should ignore keys")
	}
}
