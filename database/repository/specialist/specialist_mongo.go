// File: database/repository/specialist/specialist_mongo.go
package specialistRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"brightpath/models"
)

func (r *mongoSpecialistRepo) Create(ctx context.Context, sp models.Specialist) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sp.CreatedAt = now
	sp.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, sp); err != nil {
		return "", fmt.Errorf("failed to insert specialist: %w", err)
	}
	return sp.ID, nil
}

func (r *mongoSpecialistRepo) GetByID(ctx context.Context, id string) (*models.Specialist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sp models.Specialist
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching specialist %s: %w", id, err)
	}
	return &sp, nil
}

func (r *mongoSpecialistRepo) ListAvailable(ctx context.Context) ([]models.Specialist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"isAvailable": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing available specialists: %w", err)
	}
	defer cursor.Close(ctx)

	var specialists []models.Specialist
	if err := cursor.All(ctx, &specialists); err != nil {
		return nil, fmt.Errorf("error decoding specialists: %w", err)
	}
	return specialists, nil
}

func (r *mongoSpecialistRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	return r.update(ctx, id, bson.M{"isAvailable": available})
}

func (r *mongoSpecialistRepo) SetSchedule(ctx context.Context, id string, schedule []models.ScheduleRange) error {
	return r.update(ctx, id, bson.M{"schedule": schedule})
}

func (r *mongoSpecialistRepo) update(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating specialist %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the specialists collection.
func (r *mongoSpecialistRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isAvailable", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("available_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create specialist indexes: %w", err)
	}
	return nil
}
