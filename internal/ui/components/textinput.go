package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with CyberGuard styling.
type TextInput struct {
	Model    textinput.Model
	Label    string
	MaxWidth int
	errMsg   string
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(label, placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		Label:    label,
		MaxWidth: maxWidth,
	}
}

// Masked hides the typed characters.
func (t TextInput) Masked() TextInput {
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	return t
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		t.errMsg = ""
	}
	return t, cmd
}

// View renders the label, the input and any field error.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Model.Focused() {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}
	view := labelStyle.Render(t.Label) + "\n" + t.Model.View()
	if t.errMsg != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.errMsg)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetError shows a field-level validation message until the next keypress.
func (t *TextInput) SetError(msg string) {
	t.errMsg = msg
}

// Error returns the current field-level message.
func (t TextInput) Error() string {
	return t.errMsg
}
