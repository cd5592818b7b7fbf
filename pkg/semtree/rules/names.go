package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValidName reports whether s can be used as an element name.
func IsValidName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 && !isNameStart(r) {
			return false
		}

		if !isNameChar(r) {
			return false
		}
	}

	return true
}

// SanitizeName turns s into a valid element name: characters that cannot
// appear in a name become '_', a leading character that cannot start a name
// gets a '_' prefix, and the empty string becomes "_".
func SanitizeName(s string) string {
	if IsValidName(s) {
		return s
	}

	if s == "" {
		return "_"
	}

	var sb strings.Builder

	sb.Grow(len(s) + 1)

	first, _ := utf8.DecodeRuneInString(s)
	if !isNameStart(first) && isNameChar(first) {
		sb.WriteByte('_')
	}

	for _, r := range s {
		if isNameChar(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}

	return sb.String()
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || r == '-' || r == '.'
}
