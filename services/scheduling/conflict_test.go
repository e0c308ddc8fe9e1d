package scheduling

import (
	"testing"
	"time"

	"brightpath/models"
)

func iv(startHour, endHour int) models.Interval {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return models.Interval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b models.Interval
		want bool
	}{
		{"identical", iv(9, 10), iv(9, 10), true},
		{"partial overlap", iv(9, 11), iv(10, 12), true},
		{"containment", iv(9, 12), iv(10, 11), true},
		{"contained by", iv(10, 11), iv(9, 12), true},
		{"back to back", iv(9, 10), iv(10, 11), false},
		{"back to back reversed", iv(10, 11), iv(9, 10), false},
		{"disjoint", iv(9, 10), iv(14, 15), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(tc.b, tc.a); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}
