// File: database/repository/specialist/interface.go
package specialistRepo

import (
	"context"
	"errors"

	"brightpath/database"
	"brightpath/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no specialist matches the given id.
var ErrNotFound = errors.New("specialist not found")

type SpecialistRepository interface {
	Create(ctx context.Context, sp models.Specialist) (string, error)
	GetByID(ctx context.Context, id string) (*models.Specialist, error)
	// ListAvailable returns specialists with the global availability flag set,
	// in stable insertion order.
	ListAvailable(ctx context.Context) ([]models.Specialist, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	SetSchedule(ctx context.Context, id string, schedule []models.ScheduleRange) error
	EnsureIndexes() error
}

type mongoSpecialistRepo struct {
	coll *mongo.Collection
}

// NewMongoSpecialistRepo constructs a new MongoDB SpecialistRepository.
func NewMongoSpecialistRepo() SpecialistRepository {
	return &mongoSpecialistRepo{
		coll: database.DB().Collection(database.SpecialistsCollection),
	}
}
