package text

import (
	"testing"

	"github.com/go-text/typesetting/di"
)

func TestBaseDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want di.Direction
	}{
		{"latin", "hello", di.DirectionLTR},
		{"hebrew", "\u05e9\u05dc\u05d5\u05dd", di.DirectionRTL},
		{"arabic", "\u0645\u0631\u062d\u0628\u0627", di.DirectionRTL},
		{"mixed starts rtl", "\u05e9\u05dc\u05d5\u05dd world", di.DirectionRTL},
		{"empty", "", di.DirectionLTR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := baseDirection(tt.text); got != tt.want {
				t.Errorf("baseDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
