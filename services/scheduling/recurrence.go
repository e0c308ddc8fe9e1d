package scheduling

import (
	"fmt"
	"time"

	"brightpath/models"
)

// maxRecurrenceDays caps how far a single rule may expand.
const maxRecurrenceDays = 180

// ExpandRecurrence turns a weekly repeating rule into concrete slots, one per
// active weekday per SlotMinutes chunk. The expansion feeds normal slot
// creation; it carries no booking semantics of its own.
func ExpandRecurrence(rule models.RecurrenceRule, createdBy string) ([]models.TimeSlot, error) {
	start, err := time.ParseInLocation("2006-01-02", rule.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate %q", rule.StartDate)
	}
	end, err := time.ParseInLocation("2006-01-02", rule.EndDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate %q", rule.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("endDate must not precede startDate")
	}
	if end.Sub(start) > maxRecurrenceDays*24*time.Hour {
		return nil, fmt.Errorf("date span exceeds %d days", maxRecurrenceDays)
	}
	if rule.StartMinute < 0 || rule.EndMinute > 24*60 || rule.StartMinute >= rule.EndMinute {
		return nil, fmt.Errorf("invalid daily range [%d, %d)", rule.StartMinute, rule.EndMinute)
	}
	if rule.SlotMinutes < 0 {
		return nil, fmt.Errorf("slotMinutes must not be negative")
	}
	if len(rule.Weekdays) == 0 {
		return nil, fmt.Errorf("at least one weekday is required")
	}

	active := make(map[time.Weekday]bool, len(rule.Weekdays))
	for _, wd := range rule.Weekdays {
		active[wd] = true
	}

	step := rule.SlotMinutes
	if step == 0 {
		step = rule.EndMinute - rule.StartMinute
	}

	var slots []models.TimeSlot
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !active[day.Weekday()] {
			continue
		}
		for m := rule.StartMinute; m+step <= rule.EndMinute; m += step {
			slots = append(slots, models.TimeSlot{
				StartTime: day.Add(time.Duration(m) * time.Minute),
				EndTime:   day.Add(time.Duration(m+step) * time.Minute),
				CreatedBy: createdBy,
			})
		}
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("rule expands to no slots")
	}
	return slots, nil
}
