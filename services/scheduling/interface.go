package scheduling

import (
	"context"
	"time"

	"brightpath/models"
)

// BookingService defines the booking engine's caller-facing operations.
type BookingService interface {
	CreateBooking(ctx context.Context, user models.Principal, req models.CreateBookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
}

// SlotService defines operator-facing slot management plus the cached
// availability reads.
type SlotService interface {
	CreateSlot(ctx context.Context, createdBy string, req models.CreateSlotRequest) (*models.TimeSlot, []string, error)
	CreateSlots(ctx context.Context, createdBy string, req models.CreateSlotsRequest) ([]string, error)
	CreateRecurring(ctx context.Context, createdBy string, rule models.RecurrenceRule) ([]string, error)
	DeleteSlot(ctx context.Context, id string) error
	AvailableSlots() []models.TimeSlot
	SlotsInRange(start, end time.Time) []models.TimeSlot
}

// EventPublisher publishes booking lifecycle events. Calls are best-effort;
// failures are logged, never propagated into the booking protocol.
type EventPublisher interface {
	Publish(ctx context.Context, key string, v any) error
}

// ReminderScheduler enqueues a reminder ahead of the booking's start time.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking *models.Booking, slot models.TimeSlot) error
}
