package text

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineBreaks(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		allowed   []int
		mandatory []int
	}{
		{
			name:      "plain words",
			text:      "foo bar baz",
			allowed:   []int{4, 8},
			mandatory: []int{11},
		},
		{
			name:      "hard break",
			text:      "ab\ncd",
			mandatory: []int{3, 5},
		},
		{
			name:      "crlf is one break",
			text:      "ab\r\ncd",
			mandatory: []int{4, 6},
		},
		{
			name:      "hyphen breaks after",
			text:      "re-do",
			allowed:   []int{3},
			mandatory: []int{5},
		},
		{
			name:      "no break inside brackets edge",
			text:      "a (b) c",
			allowed:   []int{2, 6},
			mandatory: []int{7},
		},
		{
			name:      "run of spaces breaks once",
			text:      "a  b",
			allowed:   []int{3},
			mandatory: []int{4},
		},
		{
			name:      "empty",
			text:      "",
			mandatory: []int{0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, mandatory := lineBreaks(tt.text)
			if diff := cmp.Diff(tt.allowed, allowed); diff != "" {
				t.Errorf("allowed mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.mandatory, mandatory); diff != "" {
				t.Errorf("mandatory mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWordBoundaries(t *testing.T) {
	tests := []struct {
		text string
		want []int
	}{
		{"foo bar", []int{0, 3, 4, 7}},
		{"a1b", []int{0, 3}}, // letters and digits join into one word
		{"x=1", []int{0, 1, 2, 3}},
		{"", []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, wordBoundaries(tt.text)); diff != "" {
				t.Errorf("boundaries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGraphemeBoundaries(t *testing.T) {
	// e plus combining acute accent forms one cluster.
	combined := "ae\u0301b"

	if got := nextGraphemeBoundary(combined, 1); got != 4 {
		t.Errorf("nextGraphemeBoundary after a = %d, want past the accent", got)
	}
	if got := prevGraphemeBoundary(combined, 4); got != 1 {
		t.Errorf("prevGraphemeBoundary before b = %d, want 1", got)
	}

	crlf := "a\r\nb"
	if got := nextGraphemeBoundary(crlf, 1); got != 3 {
		t.Errorf("nextGraphemeBoundary over crlf = %d, want 3", got)
	}
	if got := prevGraphemeBoundary(crlf, 3); got != 1 {
		t.Errorf("prevGraphemeBoundary over crlf = %d, want 1", got)
	}

	if got := nextGraphemeBoundary("ab", 5); got != 2 {
		t.Errorf("nextGraphemeBoundary past the end = %d, want len", got)
	}
	if got := prevGraphemeBoundary("ab", -1); got != 0 {
		t.Errorf("prevGraphemeBoundary before the start = %d, want 0", got)
	}
}
