package quality

import (
	"errors"
	"fmt"
	"math"
)

// Range is an inclusive [Low, High] reference interval.
type Range struct {
	Low  float64
	High float64

	// Provisional marks bounds that are placeholders rather than a
	// verified standard.
	Provisional bool
}

// Contains reports whether v lies in the closed interval. NaN is never
// contained because every comparison with NaN is false.
func (r Range) Contains(v float64) bool {
	return r.Low <= v && v <= r.High
}

// String formats the range as "(low, high)".
func (r Range) String() string {
	return fmt.Sprintf("(%g, %g)", r.Low, r.High)
}

// RangeEntry pairs a parameter with its reference range.
type RangeEntry struct {
	Parameter Parameter
	Range     Range
}

// RangeTable is an ordered, read-only table of reference ranges. The zero
// value is an empty table that flags nothing.
type RangeTable struct {
	entries []RangeEntry
	index   map[Parameter]int
}

// NewRangeTable builds a table from entries, preserving their order.
func NewRangeTable(entries ...RangeEntry) (RangeTable, error) {
	t := RangeTable{
		entries: make([]RangeEntry, 0, len(entries)),
		index:   make(map[Parameter]int, len(entries)),
	}
	for _, e := range entries {
		if e.Parameter == "" {
			return RangeTable{}, errors.New("range entry has no parameter")
		}
		if math.IsNaN(e.Range.Low) || math.IsNaN(e.Range.High) {
			return RangeTable{}, fmt.Errorf("range for %s has a NaN bound", e.Parameter)
		}
		if e.Range.Low > e.Range.High {
			return RangeTable{}, fmt.Errorf("range for %s: low %g exceeds high %g",
				e.Parameter, e.Range.Low, e.Range.High)
		}
		if _, dup := t.index[e.Parameter]; dup {
			return RangeTable{}, fmt.Errorf("duplicate range for %s", e.Parameter)
		}
		t.index[e.Parameter] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// MustRangeTable is NewRangeTable that panics on an invalid table.
// Intended for package-level literals.
func MustRangeTable(entries ...RangeEntry) RangeTable {
	t, err := NewRangeTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the table in insertion order.
func (t RangeTable) Entries() []RangeEntry {
	out := make([]RangeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the range for p, if tabled.
func (t RangeTable) Lookup(p Parameter) (Range, bool) {
	i, ok := t.index[p]
	if !ok {
		return Range{}, false
	}
	return t.entries[i].Range, true
}

// Len returns the number of tabled parameters.
func (t RangeTable) Len() int {
	return len(t.entries)
}

// Provisional returns the tabled parameters whose bounds are placeholders.
func (t RangeTable) Provisional() []Parameter {
	var out []Parameter
	for _, e := range t.entries {
		if e.Range.Provisional {
			out = append(out, e.Parameter)
		}
	}
	return out
}

// WHORanges returns the default WHO-recommended reference table.
//
// Hardness, Conductivity and Organic_carbon carry example values rather
// than verified limits and are marked provisional.
func WHORanges() RangeTable {
	return whoRanges
}

var whoRanges = MustRangeTable(
	RangeEntry{PH, Range{Low: 6.5, High: 8.5}},
	RangeEntry{Solids, Range{Low: 250, High: 600}},
	RangeEntry{Chloramines, Range{Low: 0, High: 4}},
	RangeEntry{Sulfate, Range{Low: 100, High: 500}},
	RangeEntry{Conductivity, Range{Low: 0, High: 400, Provisional: true}},
	RangeEntry{Trihalomethanes, Range{Low: 0.08, High: 0.1}},
	RangeEntry{Turbidity, Range{Low: 0, High: 5}},
	RangeEntry{Hardness, Range{Low: 60, High: 120, Provisional: true}},
	RangeEntry{OrganicCarbon, Range{Low: 0, High: 4, Provisional: true}},
)
