package timeparsing

import (
	"testing"
	"time"
)

func TestParseFixedLayouts(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-08-01T09:30:00Z", time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)},
		{"2026-08-01 09:30:00", time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)},
		{"2026-08-01 09:30", time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)},
		{"2026-08-01", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input, now)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseNaturalLanguage(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	got, err := Parse("yesterday", now)
	if err != nil {
		t.Fatalf("Parse(yesterday) failed: %v", err)
	}
	if got.Day() != 22 || got.Month() != time.August {
		t.Errorf("Parse(yesterday) = %v, want a time on 2026-08-22", got)
	}
}

func TestParseUnrecognized(t *testing.T) {
	if _, err := Parse("not a time at all xyz", time.Now()); err == nil {
		t.Fatal("expected error for unparseable input")
	}
}
