// File: database/repository/slot/feed.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"brightpath/database"
	"brightpath/models"
	"brightpath/utils"
)

// MongoSlotFeed delivers ordered upsert/delete events from the slots
// collection via a MongoDB change stream, filtered to slots starting today or
// later. Delete events carry only the document key and always pass through.
type MongoSlotFeed struct {
	coll *mongo.Collection
}

// NewMongoSlotFeed constructs a change feed over the slots collection.
func NewMongoSlotFeed() *MongoSlotFeed {
	return &MongoSlotFeed{
		coll: database.DB().Collection(database.SlotsCollection),
	}
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument *models.TimeSlot `bson:"fullDocument"`
}

// Subscribe opens the change stream and returns a channel of events. The
// channel is closed when the stream ends (transport failure or context
// cancellation); callers decide whether to resubscribe.
func (f *MongoSlotFeed) Subscribe(ctx context.Context) (<-chan models.SlotEvent, error) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"$or": bson.A{
				bson.M{"operationType": "delete"},
				bson.M{
					"operationType":          bson.M{"$in": bson.A{"insert", "update", "replace"}},
					"fullDocument.startTime": bson.M{"$gte": startOfDay},
				},
			},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := f.coll.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open slot change stream: %w", err)
	}

	ch := make(chan models.SlotEvent, 64)
	go func() {
		logger := utils.GetLogger()
		defer close(ch)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var ev changeEvent
			if err := stream.Decode(&ev); err != nil {
				logger.Error("slot feed: failed to decode change event", zap.Error(err))
				continue
			}
			switch ev.OperationType {
			case "delete":
				ch <- models.SlotEvent{Type: models.SlotEventDelete, SlotID: ev.DocumentKey.ID}
			case "insert", "update", "replace":
				if ev.FullDocument == nil {
					// The document was deleted between the update and the
					// lookup; the following delete event handles it.
					continue
				}
				ch <- models.SlotEvent{Type: models.SlotEventUpsert, SlotID: ev.DocumentKey.ID, Slot: ev.FullDocument}
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			logger.Error("slot feed: change stream ended", zap.Error(err))
		}
	}()

	return ch, nil
}
