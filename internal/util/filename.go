package util

import "strings"

// SafeFilename makes name usable inside a Content-Disposition filename:
// path separators and control characters collapse to "-", surrounding
// whitespace is dropped, and an empty result falls back to fallback.
func SafeFilename(name, fallback string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '"':
			b.WriteRune('-')
		case r < 0x20 || r == 0x7f:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return fallback
	}
	return out
}
