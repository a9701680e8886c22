package utils

import (
	"errors"
	"testing"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    models.TimeOfDay
		wantErr bool
	}{
		{"", models.Morning, false},
		{"Morning", models.Morning, false},
		{" evening ", models.Evening, false},
		{"afternoon", models.Afternoon, false},
		{"night", models.Night, false},
		{"dawn", "", true},
		{"pm", "", true},
		{"midday", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	if got, _ := ParseAlgorithm(""); got != "prim" {
		t.Errorf("default algorithm = %q, want prim", got)
	}
	if got, _ := ParseAlgorithm("KRUSKAL"); got != "kruskal" {
		t.Errorf("got %q, want kruskal", got)
	}
	if _, err := ParseAlgorithm("boruvka"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
