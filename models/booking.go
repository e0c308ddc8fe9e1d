package models

import "time"

// Booking status values. A booking starts out pending, is confirmed and later
// completed by the specialist, and can be cancelled from pending or confirmed.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// ActiveBookingStatuses are the statuses that count toward slot exclusivity
// and specialist busyness.
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

// Booking represents a reservation of a single TimeSlot by a user.
type Booking struct {
	ID                   string    `bson:"_id" json:"id"`
	TimeSlotID           string    `bson:"timeSlotId" json:"timeSlotId"`
	UserID               string    `bson:"userId" json:"userId"`
	UserName             string    `bson:"userName" json:"userName"`
	UserEmail            string    `bson:"userEmail" json:"userEmail"`
	AssignedSpecialistID string    `bson:"assignedSpecialistId,omitempty" json:"assignedSpecialistId,omitempty"`
	Status               string    `bson:"status" json:"status"`
	Notes                string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Meeting              *Meeting  `bson:"meeting,omitempty" json:"meeting,omitempty"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the booking counts as active (pending or confirmed).
func (b Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// CreateBookingRequest defines the payload for creating a booking.
type CreateBookingRequest struct {
	TimeSlotID       string `json:"timeSlotId" binding:"required"`
	SpecialistID     string `json:"specialistId"` // explicit choice; ignored when AutoAssign is set
	AutoAssign       bool   `json:"autoAssign"`
	ProvisionMeeting bool   `json:"provisionMeeting"`
	Notes            string `json:"notes"`
}
