package components

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aquacheck/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Aquacheck styling. A numeric input
// accepts digits and a single decimal point.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	MaxWidth    int
	submitted   bool
	valid       bool
}

// NewTextInput creates a new styled text input. The input starts blurred.
func NewTextInput(placeholder string, numericOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
		MaxWidth:    maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return nil
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && !t.acceptsRune(key[0]) {
				return t, nil
			}
		}
	}

	t.submitted = false
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) acceptsRune(c byte) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	return c == '.' && !strings.Contains(t.Model.Value(), ".")
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the current input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.submitted = false
}

// FloatValue parses the input as a decimal number.
func (t TextInput) FloatValue() (float64, error) {
	raw := strings.TrimSpace(t.Model.Value())
	if raw == "" {
		return 0, fmt.Errorf("value is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return v, nil
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}
