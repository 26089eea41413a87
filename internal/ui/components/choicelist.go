package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// ChoiceList is a numbered option picker. It only records which option the
// user picked; grading happens elsewhere and is shown through Reveal.
type ChoiceList struct {
	Prompt  string
	Options []string
	Width   int

	cursor  int
	picked  int
	correct int
}

// NewChoiceList creates a picker with the cursor on the first option.
func NewChoiceList(prompt string, options []string) ChoiceList {
	return ChoiceList{
		Prompt:  prompt,
		Options: options,
		picked:  -1,
		correct: -1,
	}
}

// Cursor returns the highlighted option.
func (c ChoiceList) Cursor() int {
	return c.cursor
}

// Picked returns the chosen option once the user has committed to one.
func (c ChoiceList) Picked() (int, bool) {
	return c.picked, c.picked >= 0
}

// Reveal marks the graded answer so View can color the options.
func (c *ChoiceList) Reveal(picked, correct int) {
	c.picked = picked
	c.correct = correct
}

// Update moves the cursor and commits on enter or a number key. Input is
// ignored once an option has been picked.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || c.picked >= 0 {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		c.cursor = max(c.cursor-1, 0)
	case "down", "j":
		c.cursor = min(c.cursor+1, len(c.Options)-1)
	case "enter", "space":
		c.picked = c.cursor
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.cursor = i
				c.picked = i
			}
		}
	}
	return c, nil
}

func (c ChoiceList) optionStyle(i int) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c.Width > 0 {
		style = style.Width(c.Width)
	}
	switch {
	case c.correct >= 0 && i == c.correct:
		return style.Foreground(theme.Success).Bold(true)
	case c.correct >= 0 && i == c.picked:
		return style.Foreground(theme.Error).Bold(true)
	case c.correct >= 0:
		return style.Foreground(theme.TextDim)
	case i == c.cursor:
		return style.Foreground(theme.Primary).Bold(true)
	default:
		return style.Foreground(theme.Text)
	}
}

// View renders the prompt and the numbered options.
func (c ChoiceList) View() string {
	var b strings.Builder
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if c.Width > 0 {
		prompt = prompt.Width(c.Width)
	}
	b.WriteString(prompt.Render(c.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		marker := "  "
		switch {
		case c.correct >= 0 && i == c.correct:
			marker = "✓ "
		case c.correct >= 0 && i == c.picked:
			marker = "✗ "
		case c.correct < 0 && i == c.cursor:
			marker = "▸ "
		}
		b.WriteString(c.optionStyle(i).Render(fmt.Sprintf("%s%d) %s", marker, i+1, opt)))
		b.WriteString("\n")
	}
	return b.String()
}
