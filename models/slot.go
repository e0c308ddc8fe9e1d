package models

import "time"

// TimeSlot represents a bookable consultation window.
type TimeSlot struct {
	ID                   string    `bson:"_id" json:"id"`
	StartTime            time.Time `bson:"startTime" json:"startTime"`
	EndTime              time.Time `bson:"endTime" json:"endTime"`
	IsBooked             bool      `bson:"isBooked" json:"isBooked"`
	BookedBy             string    `bson:"bookedBy,omitempty" json:"bookedBy,omitempty"`
	AssignedSpecialistID string    `bson:"assignedSpecialistId,omitempty" json:"assignedSpecialistId,omitempty"`
	CreatedBy            string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Interval returns the slot's time interval.
func (s TimeSlot) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CreateSlotRequest defines the payload for creating a single timeslot.
type CreateSlotRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// CreateSlotsRequest defines the payload for batch slot creation.
type CreateSlotsRequest struct {
	Slots []CreateSlotRequest `json:"slots" binding:"required,min=1"`
}

// RecurrenceRule describes a weekly repeating pattern of slots over a date span.
// StartMinute/EndMinute are minutes from midnight in the rule's location.
type RecurrenceRule struct {
	StartDate   string         `json:"startDate" binding:"required"` // "2006-01-02"
	EndDate     string         `json:"endDate" binding:"required"`   // inclusive
	Weekdays    []time.Weekday `json:"weekdays" binding:"required,min=1"`
	StartMinute int            `json:"startMinute"`
	EndMinute   int            `json:"endMinute" binding:"required"`
	SlotMinutes int            `json:"slotMinutes"` // 0 means one slot per day covering the whole range
}
