package format

// TruncateWithEllipsis shortens s to at most maxWidth runes. Cut text ends in
// "..." unless maxWidth is too small to hold it alongside a visible rune.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	runes := []rune(s)
	switch {
	case len(runes) <= maxWidth:
		return s
	case maxWidth < 4:
		return string(runes[:maxWidth])
	default:
		return string(runes[:maxWidth-3]) + "..."
	}
}
