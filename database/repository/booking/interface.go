// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"

	"brightpath/database"
	"brightpath/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors surfaced by the repository. The scheduling service maps
// these onto its caller-facing failure taxonomy.
var (
	ErrSlotNotFound      = errors.New("timeslot not found")
	ErrSlotAlreadyBooked = errors.New("timeslot already booked")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

type BookingRepository interface {
	// Reserve atomically re-checks slot availability, inserts the booking and
	// marks the slot booked. The in-transaction read is the authoritative
	// double-booking check.
	Reserve(ctx context.Context, booking *models.Booking) error
	// Cancel atomically marks the booking cancelled and releases its slot.
	Cancel(ctx context.Context, bookingID string) (*models.Booking, error)
	// UpdateStatus performs a guarded single-document status update; the
	// update only applies when the current status is in allowedFrom.
	UpdateStatus(ctx context.Context, bookingID, to string, allowedFrom []string) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListActive returns all bookings with status pending or confirmed.
	ListActive(ctx context.Context) ([]models.Booking, error)
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	bookingColl *mongo.Collection
	slotColl    *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &mongoBookingRepo{
		bookingColl: db.Collection(database.BookingsCollection),
		slotColl:    db.Collection(database.SlotsCollection),
	}
}
