package engine_test

import (
	"testing"

	"github.com/datalift/tablegate/engine"
)

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		location string
		want     []string
	}{
		{"`c`.`d`.`t`", []string{"c", "d", "t"}},
		{"`d`.`t`", []string{"d", "t"}},
		{"`t`", []string{"t"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := engine.SplitLocation(tt.location)
		if len(got) != len(tt.want) {
			t.Errorf("SplitLocation(%q) = %v, want %v", tt.location, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("SplitLocation(%q)[%d] = %q, want %q", tt.location, i, got[i], tt.want[i])
			}
		}
	}
}

func TestQuoteANSI(t *testing.T) {
	got := engine.QuoteANSI("`dev`.`default`.`events`")
	want := `"dev"."default"."events"`
	if got != want {
		t.Errorf("QuoteANSI = %s, want %s", got, want)
	}
}
