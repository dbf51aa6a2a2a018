package utils

import (
	"regexp"
	"strings"
)

// wordPattern matches alphabetic tokens of three or more letters
var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// Words returns the alphabetic tokens of s with at least three letters, in order
func Words(s string) []string {
	return wordPattern.FindAllString(s, -1)
}

// ContainsAny reports whether s contains any of the substrings
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether word occurs in s delimited by non-word characters
// or the ends of the string. Matching is case-insensitive.
func ContainsWord(s, word string) bool {
	if word == "" {
		return false
	}
	s = strings.ToLower(s)
	word = strings.ToLower(word)
	for start := 0; ; {
		idx := strings.Index(s[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)
		if (idx == 0 || !isWordByte(s[idx-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Truncate cuts s to at most n runes, appending "..." when it was cut
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimRight(string(r[:n]), " \t\n") + "..."
}

// CollapseSpaces trims s and joins its fields with single spaces
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
