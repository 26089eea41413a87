package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberguard/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns the stack of screens and
// gives the top one the content area between header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider screens supply their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer screens are notified when they leave the stack, so an unfinished
// simulation run can be discarded.
type Closer interface {
	Close()
}

// Resumer screens are notified when they become the top of the stack again
// after the screen above them was popped.
type Resumer interface {
	Resume() tea.Cmd
}
