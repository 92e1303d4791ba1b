// Package text holds plain-text helpers shared by the poller and the UI.
// Backend-controlled strings pass through Sanitize before they reach the
// terminal; rendering raw control bytes would let a malicious item inject
// escape sequences the same way unescaped markup injects script into a page.
package text

import "strings"

// Sanitize returns s with control and escape characters removed so the
// string is inert when written to a terminal. Newlines and tabs collapse
// to single spaces; C0 controls, DEL and C1 controls are dropped, which
// removes ESC and with it any ANSI sequence introducer.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteRune(' ')
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f):
			// drop
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
