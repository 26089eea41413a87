package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

const bannerArt = `
  ██████╗██╗   ██╗██████╗ ███████╗██████╗
 ██╔════╝╚██╗ ██╔╝██╔══██╗██╔════╝██╔══██╗
 ██║      ╚████╔╝ ██████╔╝█████╗  ██████╔╝
 ██║       ╚██╔╝  ██╔══██╗██╔══╝  ██╔══██╗
 ╚██████╗   ██║   ██████╔╝███████╗██║  ██║
  ╚═════╝   ╚═╝   ╚═════╝ ╚══════╝╚═╝  ╚═╝
  ██████╗ ██╗   ██╗ █████╗ ██████╗ ██████╗
 ██╔════╝ ██║   ██║██╔══██╗██╔══██╗██╔══██╗
 ██║  ███╗██║   ██║███████║██████╔╝██║  ██║
 ██║   ██║██║   ██║██╔══██║██╔══██╗██║  ██║
 ╚██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝`

const BannerCompact = "C Y B E R G U A R D"

// RenderBanner returns the CYBERGUARD banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 48 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 48 {
		return style.Render(BannerCompact)
	}
	return style.Render(bannerArt)
}
