package scheduling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	bookingRepo "brightpath/database/repository/booking"
	slotRepo "brightpath/database/repository/slot"
	specialistRepo "brightpath/database/repository/specialist"
	"brightpath/models"
	"brightpath/utils"
)

// slotLookupBatchSize bounds the "$in" id queries when resolving booking
// intervals.
const slotLookupBatchSize = 10

// SpecialistAllocator assigns the least-busy eligible specialist to a
// candidate interval. Each call is an independent greedy decision; no global
// optimization across concurrent requests is attempted.
type SpecialistAllocator struct {
	Specialists specialistRepo.SpecialistRepository
	Bookings    bookingRepo.BookingRepository
	Slots       slotRepo.SlotRepository
}

// SelectLeastBusy returns the available specialist with no active booking
// overlapping the interval and the fewest active bookings overall. Ties break
// in stable input order.
func (a *SpecialistAllocator) SelectLeastBusy(ctx context.Context, iv models.Interval) (*models.Specialist, error) {
	specialists, err := a.Specialists.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch specialists: %v", ErrStoreUnavailable, err)
	}
	if len(specialists) == 0 {
		return nil, ErrNoSpecialistAvailable
	}

	active, err := a.Bookings.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch active bookings: %v", ErrStoreUnavailable, err)
	}

	intervals, err := a.resolveIntervals(ctx, active)
	if err != nil {
		return nil, err
	}

	busy := make(map[string]bool)
	counts := make(map[string]int)
	for _, b := range active {
		if b.AssignedSpecialistID == "" {
			continue
		}
		counts[b.AssignedSpecialistID]++
		if slotIv, ok := intervals[b.TimeSlotID]; ok && Overlaps(slotIv, iv) {
			busy[b.AssignedSpecialistID] = true
		}
	}

	var best *models.Specialist
	bestCount := 0
	for i := range specialists {
		sp := &specialists[i]
		if !sp.WorksDuring(iv) || busy[sp.ID] {
			continue
		}
		n := counts[sp.ID]
		if best == nil || n < bestCount {
			best = sp
			bestCount = n
		}
	}
	if best == nil {
		return nil, ErrNoSpecialistAvailable
	}

	utils.GetLogger().Debug("allocator: selected specialist",
		zap.String("specialistID", best.ID), zap.Int("activeBookings", bestCount))
	return best, nil
}

// resolveIntervals maps each active booking's slot id to its interval,
// fetching slots in bounded id batches.
func (a *SpecialistAllocator) resolveIntervals(ctx context.Context, bookings []models.Booking) (map[string]models.Interval, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, b := range bookings {
		if b.AssignedSpecialistID == "" || seen[b.TimeSlotID] {
			continue
		}
		seen[b.TimeSlotID] = true
		ids = append(ids, b.TimeSlotID)
	}

	intervals := make(map[string]models.Interval, len(ids))
	for start := 0; start < len(ids); start += slotLookupBatchSize {
		end := start + slotLookupBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		slots, err := a.Slots.GetByIDs(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: resolve booking slots: %v", ErrStoreUnavailable, err)
		}
		for _, s := range slots {
			intervals[s.ID] = s.Interval()
		}
	}
	return intervals, nil
}
