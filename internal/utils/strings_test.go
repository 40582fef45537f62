package utils

import "testing"

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		pattern string
		target  string
		want    bool
	}{
		{"", "anything", true},
		{"fix", "Fix the parser", true},
		{"fxp", "Fix the parser", true},
		{"parser fix", "Fix the parser", false}, // order matters
		{"docs", "Write documentation", false},
		{"wd", "Write docs", true},
		{"FIX", "fix", true},
		{"fix", "", false},
	}
	for _, tt := range tests {
		if got := FuzzyMatch(tt.pattern, tt.target); got != tt.want {
			t.Errorf("FuzzyMatch(%q, %q) = %v, want %v", tt.pattern, tt.target, got, tt.want)
		}
	}
}
