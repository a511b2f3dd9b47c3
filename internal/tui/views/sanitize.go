package views

import (
	"strings"
	"unicode"
)

// cleanLabel strips runes that tcell cannot place in a single cell run:
// control characters other than the legend line break, zero width joiners,
// skin tone modifiers and variation selectors. Labels come from user
// layout files, so anything may show up.
func cleanLabel(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if unicode.IsControl(r) || dropRune(r) {
			return -1
		}
		return r
	}, s)
}

func dropRune(r rune) bool {
	switch {
	case r >= 0x1F3FB && r <= 0x1F3FF: // skin tones
		return true
	case r == 0x200D: // ZWJ
		return true
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	}
	return false
}
