package utils

import (
	"unicode"
	"unicode/utf8"
)

func isSeparator(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '.' || r == '/' || r == '\''
}

// IsOnlyNumbers reports whether s is non-empty and made of digits only.
func IsOnlyNumbers(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsSpecialChars reports whether s has a rune that is neither a
// letter, a digit nor a common word separator.
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !isSeparator(r) {
			return true
		}
	}
	return false
}

// IsRepetitive reports whether s is one rune repeated three or more times.
func IsRepetitive(s string) bool {
	if utf8.RuneCountInString(s) <= 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	for _, r := range s {
		if r != first {
			return false
		}
	}
	return true
}

// IsValidInput filters prefixes not worth completing: numbers, strings
// with special characters and runs like "www".
func IsValidInput(s string) bool {
	return s != "" && !IsOnlyNumbers(s) && !ContainsSpecialChars(s) && !IsRepetitive(s)
}
