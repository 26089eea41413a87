package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// Terminal size limits.
const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is what the header shows about the current session.
type Status struct {
	Title  string
	User   string // empty when signed out
	Level  string
	Streak int
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Highlight).
		Render(fmt.Sprintf(
			"⚠ Console needs more room\n\nResize to at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// StreakLabel formats a day streak for the header.
func StreakLabel(days int) string {
	if days == 1 {
		return "🔥 1 day"
	}
	return fmt.Sprintf("🔥 %d days", days)
}

// RenderHeader renders the brand on the left, the screen title centered and
// the session status on the right.
func RenderHeader(s Status, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  🛡 CyberGuard")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(s.Title)

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var right string
	if s.User == "" {
		right = dim.Render("not signed in")
	} else {
		parts := []string{lipgloss.NewStyle().Foreground(theme.Secondary).Render(s.User)}
		if s.Level != "" {
			parts = append(parts, dim.Render(s.Level))
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Highlight).Render(StreakLabel(s.Streak)))
		right = strings.Join(parts, dim.Render(" · "))
	}

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter renders key hints, dropping trailing hints that do not fit
// on one line.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	budget := max(width-6, 0)
	var b strings.Builder
	b.WriteString("  ")
	used := 0
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		sep := ""
		if i > 0 {
			sep = "   "
		}
		w := lipgloss.Width(sep + part)
		if used+w > budget {
			break
		}
		b.WriteString(sep + part)
		used += w
	}
	return bar(b.String(), width)
}

// RenderFrame stacks header, content and footer, giving the content whatever
// height remains.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
