package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"not_potable": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"potable":     map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []any{"not_potable", "potable"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(schema.Properties))
	}
	p := schema.Properties["potable"]
	if p.Type != genai.TypeNumber {
		t.Fatalf("expected NUMBER for potable, got %s", p.Type)
	}
	if p.Minimum == nil || *p.Minimum != 0 || p.Maximum == nil || *p.Maximum != 1 {
		t.Fatalf("expected bounds [0, 1], got %v / %v", p.Minimum, p.Maximum)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
