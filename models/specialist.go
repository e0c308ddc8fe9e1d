package models

import "time"

// Specialist is a consultation provider that can be assigned to bookings.
type Specialist struct {
	ID          string          `bson:"_id" json:"id"`
	Name        string          `bson:"name" json:"name"`
	Email       string          `bson:"email" json:"email"`
	Title       string          `bson:"title,omitempty" json:"title,omitempty"` // e.g. "speech therapist"
	IsAvailable bool            `bson:"isAvailable" json:"isAvailable"`
	Schedule    []ScheduleRange `bson:"schedule,omitempty" json:"schedule,omitempty"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// ScheduleRange is a recurring weekly working window. Start and End are
// minutes from midnight; the range is half-open.
type ScheduleRange struct {
	Weekday time.Weekday `bson:"weekday" json:"weekday"`
	Start   int          `bson:"start" json:"start"`
	End     int          `bson:"end" json:"end"`
}

// WorksDuring reports whether the interval falls inside the specialist's
// weekly schedule. An empty schedule means no restriction.
func (s Specialist) WorksDuring(iv Interval) bool {
	if len(s.Schedule) == 0 {
		return true
	}
	day := iv.Start.Weekday()
	startMin := iv.Start.Hour()*60 + iv.Start.Minute()
	endMin := startMin + int(iv.End.Sub(iv.Start).Minutes())
	for _, r := range s.Schedule {
		if r.Weekday == day && r.Start <= startMin && endMin <= r.End {
			return true
		}
	}
	return false
}

// RegisterSpecialistRequest defines the payload for registering a specialist.
type RegisterSpecialistRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Title    string          `json:"title"`
	Schedule []ScheduleRange `json:"schedule"`
}
