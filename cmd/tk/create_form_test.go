package main

import (
	"reflect"
	"testing"
)

func TestParseCreateFormInput(t *testing.T) {
	raw := &createFormRawInput{
		Title:       "  Fix parser  ",
		Description: "Handles trailing commas\n",
		Projects:    "Alpha, beta,,  ",
		BlockedBy:   "TICKET-0001,TICKET-0002",
	}
	in := parseCreateFormInput(raw)

	if in.Title != "Fix parser" {
		t.Errorf("Title = %q", in.Title)
	}
	if in.Description != "Handles trailing commas" {
		t.Errorf("Description = %q", in.Description)
	}
	if !reflect.DeepEqual(in.Projects, []string{"Alpha", "beta"}) {
		t.Errorf("Projects = %v", in.Projects)
	}
	if !reflect.DeepEqual(in.BlockedBy, []string{"TICKET-0001", "TICKET-0002"}) {
		t.Errorf("BlockedBy = %v", in.BlockedBy)
	}
}

func TestSplitCommaList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"  ,  ,", nil},
		{"one", []string{"one"}},
		{"one,two", []string{"one", "two"}},
		{" one , two ", []string{"one", "two"}},
	}
	for _, tt := range tests {
		if got := splitCommaList(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitCommaList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
