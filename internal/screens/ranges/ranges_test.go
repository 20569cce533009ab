package ranges

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aquacheck/internal/quality"
	"github.com/abhisek/aquacheck/internal/router"
)

func TestView_ListsEveryEntry(t *testing.T) {
	view := New(quality.WHORanges()).View(100, 30)
	for _, e := range quality.WHORanges().Entries() {
		if !strings.Contains(view, e.Parameter.DisplayName()) {
			t.Errorf("missing %s", e.Parameter.DisplayName())
		}
	}
	if !strings.Contains(view, "provisional") {
		t.Error("expected provisional footnote")
	}
}

func TestView_NoFootnoteWithoutProvisional(t *testing.T) {
	table := quality.MustRangeTable(quality.RangeEntry{Parameter: quality.PH, Range: quality.Range{Low: 6.5, High: 8.5}})
	if strings.Contains(New(table).View(100, 30), "provisional") {
		t.Error("unexpected provisional footnote")
	}
}

func TestEscPops(t *testing.T) {
	_, cmd := New(quality.WHORanges()).Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}
