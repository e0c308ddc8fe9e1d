// File: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Primary availability query: upcoming unbooked slots.
		{
			Keys:    bson.D{{Key: "startTime", Value: 1}, {Key: "isBooked", Value: 1}},
			Options: options.Index().SetName("start_booked_idx"),
		},
		{
			Keys:    bson.D{{Key: "assignedSpecialistId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("specialist_start_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
