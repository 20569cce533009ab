package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func typeKeys(t TextInput, keys string) TextInput {
	for _, r := range keys {
		t, _ = t.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return t
}

func TestTextInput_NumericAcceptsDecimals(t *testing.T) {
	in := NewTextInput("0.0", true, 12)
	in.Focus()

	in = typeKeys(in, "7a.2-5.1")
	if in.Value() != "7.251" {
		t.Fatalf("expected 7.251, got %q", in.Value())
	}

	v, err := in.FloatValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7.251 {
		t.Fatalf("expected 7.251, got %v", v)
	}
}

func TestTextInput_FloatValueEmpty(t *testing.T) {
	in := NewTextInput("0.0", true, 12)
	if _, err := in.FloatValue(); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestTextInput_SetValue(t *testing.T) {
	in := NewTextInput("", true, 12)
	in.SetValue("300")
	v, err := in.FloatValue()
	if err != nil || v != 300 {
		t.Fatalf("expected 300, got %v (%v)", v, err)
	}
}
