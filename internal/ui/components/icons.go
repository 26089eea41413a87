package components

// Glyph maps a catalog icon name to a terminal glyph.
func Glyph(icon string) string {
	switch icon {
	case "mail":
		return "✉"
	case "wifi":
		return "📶"
	case "users":
		return "👥"
	case "shield":
		return "🛡"
	case "shield-check":
		return "✅"
	case "play":
		return "▶"
	case "star":
		return "★"
	case "flame":
		return "🔥"
	case "calendar":
		return "📅"
	case "trophy":
		return "🏆"
	case "award":
		return "🏅"
	case "crown":
		return "👑"
	default:
		return "•"
	}
}
