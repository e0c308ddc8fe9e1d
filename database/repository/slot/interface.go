// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"
	"time"

	"brightpath/database"
	"brightpath/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no slot matches the given id.
var ErrNotFound = errors.New("timeslot not found")

// ErrSlotBooked is returned when a delete targets a slot with an active booking.
var ErrSlotBooked = errors.New("timeslot has an active booking")

type SlotRepository interface {
	Create(ctx context.Context, slot models.TimeSlot) (string, error)
	CreateMany(ctx context.Context, slots []models.TimeSlot) ([]string, error)
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.TimeSlot, error)
	ListFrom(ctx context.Context, from time.Time) ([]models.TimeSlot, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{
		coll: database.DB().Collection(database.SlotsCollection),
	}
}
