package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// coursesPerPage is the client-side page size for the course catalog.
const coursesPerPage = 8

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 500

// namedKeys are the bubbletea key names that must never be inserted as
// text. Anything else with multiple runes is treated as a paste.
var namedKeys = map[string]bool{
	"enter": true, "esc": true, "tab": true, "shift+tab": true,
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
	"insert": true, "delete": true, "backspace": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true,
	"f6": true, "f7": true, "f8": true, "f9": true, "f10": true,
	"f11": true, "f12": true,
}

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware), single printable characters, and
// multi-rune paste input. Named keys and ctrl/alt combos leave the text
// unchanged. Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	if key == "backspace" {
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	}
	if key == "" || namedKeys[key] || strings.HasPrefix(key, "ctrl+") || strings.HasPrefix(key, "alt+") {
		return text
	}
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	runes := []rune(key)
	if len(runes) > room {
		runes = runes[:room]
	}
	return text + string(runes)
}

// maskString replaces every rune with a bullet, for password fields.
func maskString(s string) string {
	return strings.Repeat("•", utf8.RuneCountInString(s))
}

// formField renders one labeled form row with cursor and focus styling.
// Masked fields show bullets instead of the value.
func formField(label, value string, focused, masked bool) string {
	cursor := " "
	style := metaStyle
	if focused {
		cursor = accentStyle.Render(">")
		style = selectedStyle
	}
	display := value
	if masked {
		display = maskString(value)
	}
	if focused {
		display += "█"
	} else if display == "" {
		display = inputPlaceholderStyle.Render("...")
	}
	return fmt.Sprintf(" %s %s: %s", cursor, style.Render(fmt.Sprintf("%-18s", label)), display)
}

// cycleField renders one labeled form row whose value is chosen from a
// fixed cycle with h/l rather than typed.
func cycleField(label, value string, focused bool) string {
	cursor := " "
	style := metaStyle
	if focused {
		cursor = accentStyle.Render(">")
		style = selectedStyle
	}
	display := value
	if display == "" {
		display = inputPlaceholderStyle.Render("(h/l to choose)")
	} else {
		display = accentStyle.Render(display)
		if focused {
			display += "  " + metaStyle.Render("(h/l to change)")
		}
	}
	return fmt.Sprintf(" %s %s: %s", cursor, style.Render(fmt.Sprintf("%-18s", label)), display)
}

// cycleNext returns the entry after current in the cycle, wrapping around.
// direction is +1 or -1. An unknown current lands on the first entry.
func cycleNext(cycle []string, current string, direction int) string {
	idx := 0
	for i, v := range cycle {
		if v == current {
			idx = i
			break
		}
	}
	idx = (idx + direction + len(cycle)) % len(cycle)
	return cycle[idx]
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
