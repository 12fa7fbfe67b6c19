package remote

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// printable drops terminal escape sequences and control characters from
// server text, keeping newlines and tabs.
func printable(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func (n Notice) sanitized() Notice {
	n.Title = printable(n.Title)
	n.Description = printable(n.Description)
	return n
}
