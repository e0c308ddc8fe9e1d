package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	slotRepo "brightpath/database/repository/slot"
	"brightpath/models"
)

// DefaultSlotService implements SlotService on the slot repository, with the
// SlotCache serving availability reads.
type DefaultSlotService struct {
	Repo  slotRepo.SlotRepository
	Cache *SlotCache
}

// CreateSlot stores a single slot. Overlap with existing cached slots is
// reported as warnings but does not block creation.
func (s *DefaultSlotService) CreateSlot(ctx context.Context, createdBy string, req models.CreateSlotRequest) (*models.TimeSlot, []string, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, nil, fmt.Errorf("startTime must be before endTime")
	}

	slot := models.TimeSlot{
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		CreatedBy: createdBy,
	}

	var warnings []string
	if s.Cache != nil {
		for _, existing := range s.Cache.GetInRange(slot.StartTime, slot.EndTime) {
			warnings = append(warnings, fmt.Sprintf(
				"overlaps existing slot %s [%s, %s)",
				existing.ID,
				existing.StartTime.Format(time.RFC3339),
				existing.EndTime.Format(time.RFC3339)))
		}
	}

	id, err := s.Repo.Create(ctx, slot)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	slot.ID = id
	return &slot, warnings, nil
}

func (s *DefaultSlotService) CreateSlots(ctx context.Context, createdBy string, req models.CreateSlotsRequest) ([]string, error) {
	slots := make([]models.TimeSlot, 0, len(req.Slots))
	for i, r := range req.Slots {
		if !r.StartTime.Before(r.EndTime) {
			return nil, fmt.Errorf("slot %d: startTime must be before endTime", i+1)
		}
		slots = append(slots, models.TimeSlot{
			StartTime: r.StartTime.UTC(),
			EndTime:   r.EndTime.UTC(),
			CreatedBy: createdBy,
		})
	}
	ids, err := s.Repo.CreateMany(ctx, slots)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return ids, nil
}

func (s *DefaultSlotService) CreateRecurring(ctx context.Context, createdBy string, rule models.RecurrenceRule) ([]string, error) {
	slots, err := ExpandRecurrence(rule, createdBy)
	if err != nil {
		return nil, err
	}
	ids, err := s.Repo.CreateMany(ctx, slots)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return ids, nil
}

func (s *DefaultSlotService) DeleteSlot(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, slotRepo.ErrNotFound):
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrSlotBooked):
		// Slots stay undeletable while an active booking references them.
		return ErrSlotAlreadyBooked
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

func (s *DefaultSlotService) AvailableSlots() []models.TimeSlot {
	return s.Cache.GetAvailable()
}

func (s *DefaultSlotService) SlotsInRange(start, end time.Time) []models.TimeSlot {
	return s.Cache.GetInRange(start, end)
}
