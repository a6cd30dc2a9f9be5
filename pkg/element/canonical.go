package element

import (
	"strings"
	"unicode"
)

// Canonicalize strips every rune that is not a letter, digit, or
// whitespace from text and trims surrounding whitespace. The canonical
// name is the dedup identity of a result: two decorated results name
// the same concept iff their canonical forms are equal.
func Canonicalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)

	return strings.TrimSpace(stripped)
}

// CleanResult normalizes a raw completion into a decorated result.
// Surrounding whitespace is trimmed, and if the rune immediately before
// the final rune is whitespace it is removed, so the trailing decorative
// symbol sits directly against the name ("Mud 💩" becomes "Mud💩").
// Single-rune input and input without the gap pass through unchanged.
func CleanResult(raw string) string {
	runes := []rune(strings.TrimSpace(raw))
	if len(runes) < 2 {
		return string(runes)
	}

	if unicode.IsSpace(runes[len(runes)-2]) {
		runes = append(runes[:len(runes)-2], runes[len(runes)-1])
	}

	return string(runes)
}
