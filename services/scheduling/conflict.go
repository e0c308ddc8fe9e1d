package scheduling

import "brightpath/models"

// Overlaps reports whether two half-open intervals [start, end) intersect.
// Back-to-back intervals do not conflict.
func Overlaps(a, b models.Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
