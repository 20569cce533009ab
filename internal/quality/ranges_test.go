package quality

import (
	"math"
	"testing"
)

func TestWHORanges_Invariants(t *testing.T) {
	table := WHORanges()
	if table.Len() != 9 {
		t.Fatalf("expected 9 tabled parameters, got %d", table.Len())
	}
	for _, e := range table.Entries() {
		if e.Range.Low > e.Range.High {
			t.Errorf("%s: low %g > high %g", e.Parameter, e.Range.Low, e.Range.High)
		}
	}

	r, ok := table.Lookup(PH)
	if !ok || r.Low != 6.5 || r.High != 8.5 {
		t.Errorf("unexpected ph range %v (ok=%v)", r, ok)
	}
}

func TestWHORanges_Provisional(t *testing.T) {
	got := WHORanges().Provisional()
	want := map[Parameter]bool{Conductivity: true, Hardness: true, OrganicCarbon: true}
	if len(got) != len(want) {
		t.Fatalf("expected %d provisional ranges, got %v", len(want), got)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("%s should not be provisional", p)
		}
	}
}

func TestWHORanges_EntriesIsACopy(t *testing.T) {
	entries := WHORanges().Entries()
	entries[0].Range.High = -1

	r, _ := WHORanges().Lookup(entries[0].Parameter)
	if r.High == -1 {
		t.Fatal("mutating Entries() must not change the table")
	}
}

func TestNewRangeTable_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []RangeEntry
	}{
		{"low above high", []RangeEntry{{PH, Range{Low: 9, High: 6}}}},
		{"nan bound", []RangeEntry{{PH, Range{Low: math.NaN(), High: 6}}}},
		{"duplicate", []RangeEntry{{PH, Range{Low: 1, High: 2}}, {PH, Range{Low: 1, High: 3}}}},
		{"empty parameter", []RangeEntry{{"", Range{Low: 1, High: 2}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRangeTable(tt.entries...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewRangeTable_DegenerateRangeAllowed(t *testing.T) {
	table, err := NewRangeTable(RangeEntry{Turbidity, Range{Low: 1, High: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := CheckRanges(table, Sample{Turbidity: 1}); len(got) != 0 {
		t.Errorf("value equal to both bounds flagged: %v", got)
	}
}

func TestZeroRangeTable(t *testing.T) {
	var table RangeTable
	if got := CheckRanges(table, Sample{PH: 100}); len(got) != 0 {
		t.Errorf("zero table should flag nothing, got %v", got)
	}
	if _, ok := table.Lookup(PH); ok {
		t.Error("zero table lookup should miss")
	}
}

func TestParseParameter(t *testing.T) {
	tests := []struct {
		input string
		want  Parameter
	}{
		{"ph", PH},
		{"pH", PH},
		{"pH Level", PH},
		{"organic_carbon", OrganicCarbon},
		{"organic-carbon", OrganicCarbon},
		{"Organic Carbon", OrganicCarbon},
		{" Turbidity ", Turbidity},
	}
	for _, tt := range tests {
		got, err := ParseParameter(tt.input)
		if err != nil {
			t.Errorf("ParseParameter(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseParameter(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}

	if _, err := ParseParameter("lead"); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestParameters_FixedOrder(t *testing.T) {
	want := []Parameter{PH, Hardness, Solids, Chloramines, Sulfate, Conductivity, OrganicCarbon, Trihalomethanes, Turbidity}
	got := Parameters()
	if len(got) != len(want) {
		t.Fatalf("expected %d parameters, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestFlagName(t *testing.T) {
	if got := OrganicCarbon.FlagName(); got != "organic-carbon" {
		t.Errorf("got %q", got)
	}
	if got := PH.FlagName(); got != "ph" {
		t.Errorf("got %q", got)
	}
}
