package domain

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"partial overlap", 10, 14, 13, 17, true},
		{"contained", 10, 18, 12, 14, true},
		{"identical", 10, 14, 10, 14, true},
		{"back to back", 10, 14, 14, 18, false},
		{"back to back reversed", 14, 18, 10, 14, false},
		{"disjoint", 8, 10, 12, 14, false},
		{"one minute over", 10, 14, 13, 15, true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(tt.aStart), at(tt.aEnd), at(tt.bStart), at(tt.bEnd))
			if got != tt.want {
				t.Fatalf("Overlaps([%d,%d), [%d,%d))=%v, want %v", tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}
