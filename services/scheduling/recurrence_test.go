package scheduling

import (
	"testing"
	"time"

	"brightpath/models"
)

func TestExpandRecurrenceWeekly(t *testing.T) {
	// Two weeks, Mondays and Wednesdays, 09:00-12:00 in 60 minute slots.
	rule := models.RecurrenceRule{
		StartDate:   "2026-09-07", // a Monday
		EndDate:     "2026-09-20",
		Weekdays:    []time.Weekday{time.Monday, time.Wednesday},
		StartMinute: 9 * 60,
		EndMinute:   12 * 60,
		SlotMinutes: 60,
	}
	slots, err := ExpandRecurrence(rule, "op-1")
	if err != nil {
		t.Fatalf("ExpandRecurrence: %v", err)
	}
	// 2 Mondays + 2 Wednesdays, 3 slots each.
	if len(slots) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(slots))
	}
	first := slots[0]
	wantStart := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	if !first.StartTime.Equal(wantStart) {
		t.Errorf("first slot starts %v, want %v", first.StartTime, wantStart)
	}
	if !first.EndTime.Equal(wantStart.Add(time.Hour)) {
		t.Errorf("first slot ends %v, want %v", first.EndTime, wantStart.Add(time.Hour))
	}
	for _, s := range slots {
		if wd := s.StartTime.Weekday(); wd != time.Monday && wd != time.Wednesday {
			t.Errorf("slot on unexpected weekday %v", wd)
		}
		if s.CreatedBy != "op-1" {
			t.Errorf("slot CreatedBy = %q", s.CreatedBy)
		}
	}
}

func TestExpandRecurrenceWholeRange(t *testing.T) {
	// SlotMinutes zero produces one slot covering the whole daily range.
	rule := models.RecurrenceRule{
		StartDate:   "2026-09-07",
		EndDate:     "2026-09-07",
		Weekdays:    []time.Weekday{time.Monday},
		StartMinute: 10 * 60,
		EndMinute:   11*60 + 30,
	}
	slots, err := ExpandRecurrence(rule, "op-1")
	if err != nil {
		t.Fatalf("ExpandRecurrence: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if got := slots[0].EndTime.Sub(slots[0].StartTime); got != 90*time.Minute {
		t.Errorf("slot duration = %v, want 90m", got)
	}
}

func TestExpandRecurrenceDropsPartialChunk(t *testing.T) {
	// 09:00-10:30 in 60 minute chunks leaves a 30 minute remainder that must
	// not become a slot.
	rule := models.RecurrenceRule{
		StartDate:   "2026-09-07",
		EndDate:     "2026-09-07",
		Weekdays:    []time.Weekday{time.Monday},
		StartMinute: 9 * 60,
		EndMinute:   10*60 + 30,
		SlotMinutes: 60,
	}
	slots, err := ExpandRecurrence(rule, "op-1")
	if err != nil {
		t.Fatalf("ExpandRecurrence: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
}

func TestExpandRecurrenceRejectsBadRules(t *testing.T) {
	base := models.RecurrenceRule{
		StartDate:   "2026-09-07",
		EndDate:     "2026-09-14",
		Weekdays:    []time.Weekday{time.Monday},
		StartMinute: 9 * 60,
		EndMinute:   10 * 60,
	}

	cases := []struct {
		name   string
		mutate func(r *models.RecurrenceRule)
	}{
		{"bad start date", func(r *models.RecurrenceRule) { r.StartDate = "07/09/2026" }},
		{"bad end date", func(r *models.RecurrenceRule) { r.EndDate = "not-a-date" }},
		{"end before start", func(r *models.RecurrenceRule) { r.EndDate = "2026-09-01" }},
		{"span too long", func(r *models.RecurrenceRule) { r.EndDate = "2027-09-07" }},
		{"inverted minutes", func(r *models.RecurrenceRule) { r.StartMinute, r.EndMinute = 600, 540 }},
		{"negative slot minutes", func(r *models.RecurrenceRule) { r.SlotMinutes = -30 }},
		{"no weekdays", func(r *models.RecurrenceRule) { r.Weekdays = nil }},
		{"no matching days", func(r *models.RecurrenceRule) {
			r.EndDate = "2026-09-08"
			r.Weekdays = []time.Weekday{time.Friday}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := base
			tc.mutate(&rule)
			if _, err := ExpandRecurrence(rule, "op-1"); err == nil {
				t.Error("expected an error, got none")
			}
		})
	}
}
