package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // streak of 3+ days
	MascotAlert                     // streak lapses without activity today
)

const mascotIdle = `╭─────╮
│ ◉ ◉ │
│  ▿  │
╰╮ ⛨ ╭╯
 ╰───╯`

const mascotCelebrating = `╭─────╮
│ ★ ★ │
│  ◡  │
╰╮ ⛨ ╭╯
 ╰───╯
 ✦   ✦`

const mascotAlert = `╭─────╮
│ ◉ ◉ │ !
│  △  │
╰╮ ⛨ ╭╯
 ╰───╯`

// RenderMascot returns the shield mascot art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Highlight
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
