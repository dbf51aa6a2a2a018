package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"tell", "about", "Sula", "Vineyards"}, Words("tell me about Sula Vineyards!"))
	assert.Empty(t, Words("hi 42 ok"))
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		s    string
		word string
		want bool
	}{
		{"hi", "hi", true},
		{"Hi, there", "hi", true},
		{"show me things", "hi", false},
		{"vaishali", "hi", false},
		{"oh hey!", "hey", true},
		{"", "hi", false},
		{"hi", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.s+"/"+tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsWord(tt.s, tt.word))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 200))

	long := strings.Repeat("a", 199) + " " + strings.Repeat("b", 10)
	got := Truncate(long, 200)
	assert.Equal(t, strings.Repeat("a", 199)+"...", got, "trailing space is trimmed before the marker")
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpaces("  a   b\tc "))
	assert.Equal(t, "", CollapseSpaces("   "))
}
