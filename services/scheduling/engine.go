package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "brightpath/database/repository/booking"
	slotRepo "brightpath/database/repository/slot"
	"brightpath/models"
	"brightpath/services/events"
	"brightpath/services/meeting"
	"brightpath/utils"
)

// DefaultBookingEngine orchestrates the atomic reserve and cancel protocols.
// Correctness under concurrent callers is delegated to the store transaction
// inside the booking repository; everything before it is preparation that
// leaves no persisted state behind on failure.
type DefaultBookingEngine struct {
	Slots       slotRepo.SlotRepository
	Bookings    bookingRepo.BookingRepository
	Allocator   *SpecialistAllocator
	Cache       *SlotCache          // optional, advisory pre-checks only
	Provisioner meeting.Provisioner // optional when meetings are disabled
	Events      EventPublisher      // optional
	Reminders   ReminderScheduler   // optional

	// MeetingTimeout bounds the external provisioning call; a timeout is a
	// provisioning failure.
	MeetingTimeout time.Duration
}

func (e *DefaultBookingEngine) CreateBooking(ctx context.Context, user models.Principal, req models.CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	// Optimistic hint only: a stale cache must never admit a booking, and the
	// transaction's own read catches anything the cache missed.
	if e.Cache != nil {
		if cached, ok := e.Cache.Get(req.TimeSlotID); ok && cached.IsBooked {
			return nil, ErrSlotAlreadyBooked
		}
	}

	slot, err := e.Slots.GetByID(ctx, req.TimeSlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if slot.IsBooked {
		return nil, ErrSlotAlreadyBooked
	}

	specialistID := req.SpecialistID
	if req.AutoAssign {
		sp, err := e.Allocator.SelectLeastBusy(ctx, slot.Interval())
		if err != nil {
			return nil, err
		}
		specialistID = sp.ID
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:                   uuid.New().String(),
		TimeSlotID:           slot.ID,
		UserID:               user.ID,
		UserName:             user.Name,
		UserEmail:            user.Email,
		AssignedSpecialistID: specialistID,
		Status:               models.BookingStatusPending,
		Notes:                req.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	// Provision before any write so a provisioning failure aborts with no
	// persisted side effect.
	if req.ProvisionMeeting {
		m, err := e.provisionMeeting(ctx, user, *slot)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMeetingProvisioning, err)
		}
		booking.Meeting = m
	}

	if err := e.Bookings.Reserve(ctx, booking); err != nil {
		return nil, e.mapRepoErr(err)
	}

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("slotID", slot.ID),
		zap.String("specialistID", specialistID))

	e.publish(ctx, events.BookingCreated, booking)
	if e.Reminders != nil {
		if err := e.Reminders.ScheduleReminder(ctx, booking, *slot); err != nil {
			logger.Warn("failed to schedule booking reminder",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}

func (e *DefaultBookingEngine) provisionMeeting(ctx context.Context, user models.Principal, slot models.TimeSlot) (*models.Meeting, error) {
	if e.Provisioner == nil {
		return nil, fmt.Errorf("meeting provisioner not configured")
	}
	timeout := e.MeetingTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	topic := fmt.Sprintf("Consultation for %s", user.Name)
	duration := int(slot.EndTime.Sub(slot.StartTime).Minutes())
	return e.Provisioner.CreateMeeting(ctx, topic, slot.StartTime, duration)
}

func (e *DefaultBookingEngine) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := e.Bookings.Cancel(ctx, bookingID)
	if err != nil {
		return nil, e.mapRepoErr(err)
	}

	// Meeting teardown stays outside the atomic unit; its failure must not
	// undo the cancellation.
	if booking.Meeting != nil && e.Provisioner != nil {
		tctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if derr := e.Provisioner.DeleteMeeting(tctx, booking.Meeting.ID); derr != nil {
			utils.GetLogger().Warn("failed to tear down meeting for cancelled booking",
				zap.String("bookingID", booking.ID),
				zap.String("meetingID", booking.Meeting.ID),
				zap.Error(derr))
		}
	}

	e.publish(ctx, events.BookingCancelled, booking)
	return booking, nil
}

func (e *DefaultBookingEngine) ConfirmBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := e.Bookings.UpdateStatus(ctx, bookingID,
		models.BookingStatusConfirmed, []string{models.BookingStatusPending})
	if err != nil {
		return nil, e.mapRepoErr(err)
	}
	e.publish(ctx, events.BookingConfirmed, booking)
	return booking, nil
}

func (e *DefaultBookingEngine) CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := e.Bookings.UpdateStatus(ctx, bookingID,
		models.BookingStatusCompleted, []string{models.BookingStatusConfirmed})
	if err != nil {
		return nil, e.mapRepoErr(err)
	}
	e.publish(ctx, events.BookingCompleted, booking)
	return booking, nil
}

func (e *DefaultBookingEngine) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, e.mapRepoErr(err)
	}
	return booking, nil
}

func (e *DefaultBookingEngine) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := e.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return bookings, nil
}

func (e *DefaultBookingEngine) publish(ctx context.Context, key string, booking *models.Booking) {
	if e.Events == nil {
		return
	}
	if err := e.Events.Publish(ctx, key, booking); err != nil {
		utils.GetLogger().Warn("failed to publish booking event",
			zap.String("key", key), zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

// mapRepoErr translates repository sentinels onto the engine's taxonomy.
// Anything unrecognized is a transport-level failure.
func (e *DefaultBookingEngine) mapRepoErr(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrSlotNotFound):
		return ErrSlotNotFound
	case errors.Is(err, bookingRepo.ErrSlotAlreadyBooked):
		return ErrSlotAlreadyBooked
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrInvalidTransition):
		return ErrInvalidTransition
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
