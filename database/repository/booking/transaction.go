// File: database/repository/booking/transaction.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"brightpath/models"
)

// withTransaction runs fn inside a MongoDB multi-document transaction.
// Domain sentinel errors abort the transaction and pass through unchanged;
// everything else is wrapped as a transaction failure.
func (r *mongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return fmt.Errorf("could not start transaction: %w", err)
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	if err != nil && !isDomainErr(err) {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return err
}

func isDomainErr(err error) bool {
	return errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrSlotAlreadyBooked) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrInvalidTransition)
}

func (r *mongoBookingRepo) Reserve(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		// The read inside the transaction is the only availability check that
		// counts; cached views may be stale.
		var slot models.TimeSlot
		if err := r.slotColl.FindOne(sc, bson.M{"_id": booking.TimeSlotID}).Decode(&slot); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrSlotNotFound
			}
			return fmt.Errorf("slot read failed: %w", err)
		}
		if slot.IsBooked {
			return ErrSlotAlreadyBooked
		}

		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		update := bson.M{"$set": bson.M{
			"isBooked":             true,
			"bookedBy":             booking.UserID,
			"assignedSpecialistId": booking.AssignedSpecialistID,
			"updatedAt":            time.Now().UTC(),
		}}
		res, err := r.slotColl.UpdateOne(sc, bson.M{"_id": booking.TimeSlotID, "isBooked": false}, update)
		if err != nil {
			return fmt.Errorf("slot update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotAlreadyBooked
		}
		return nil
	})
}

func (r *mongoBookingRepo) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var cancelled models.Booking
	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var booking models.Booking
		if err := r.bookingColl.FindOne(sc, bson.M{"_id": bookingID}).Decode(&booking); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrBookingNotFound
			}
			return fmt.Errorf("booking read failed: %w", err)
		}
		if !booking.IsActive() {
			return ErrInvalidTransition
		}

		now := time.Now().UTC()
		if _, err := r.bookingColl.UpdateOne(sc,
			bson.M{"_id": bookingID},
			bson.M{"$set": bson.M{"status": models.BookingStatusCancelled, "updatedAt": now}},
		); err != nil {
			return fmt.Errorf("booking update failed: %w", err)
		}

		if _, err := r.slotColl.UpdateOne(sc,
			bson.M{"_id": booking.TimeSlotID},
			bson.M{
				"$set":   bson.M{"isBooked": false, "updatedAt": now},
				"$unset": bson.M{"bookedBy": "", "assignedSpecialistId": ""},
			},
		); err != nil {
			return fmt.Errorf("slot release failed: %w", err)
		}

		booking.Status = models.BookingStatusCancelled
		booking.UpdatedAt = now
		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}
