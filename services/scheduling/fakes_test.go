package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	bookingRepo "brightpath/database/repository/booking"
	slotRepo "brightpath/database/repository/slot"
	"brightpath/models"
)

// memStore is a shared in-memory backing for the repository fakes. Its single
// mutex gives Reserve the same atomicity the Mongo transaction provides, so
// concurrency tests exercise the engine's real contract.
type memStore struct {
	mu       sync.Mutex
	slots    map[string]models.TimeSlot
	bookings map[string]models.Booking
}

func newMemStore() *memStore {
	return &memStore{
		slots:    make(map[string]models.TimeSlot),
		bookings: make(map[string]models.Booking),
	}
}

func (s *memStore) addSlot(slot models.TimeSlot) models.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	s.slots[slot.ID] = slot
	return slot
}

type memSlotRepo struct {
	store *memStore

	// getByIDsCalls records each id batch passed to GetByIDs.
	getByIDsCalls [][]string
	listErr       error
}

func (r *memSlotRepo) Create(ctx context.Context, slot models.TimeSlot) (string, error) {
	return r.store.addSlot(slot).ID, nil
}

func (r *memSlotRepo) CreateMany(ctx context.Context, slots []models.TimeSlot) ([]string, error) {
	ids := make([]string, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, r.store.addSlot(s).ID)
	}
	return ids, nil
}

func (r *memSlotRepo) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.slots[id]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	return &s, nil
}

func (r *memSlotRepo) GetByIDs(ctx context.Context, ids []string) ([]models.TimeSlot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.getByIDsCalls = append(r.getByIDsCalls, append([]string(nil), ids...))
	var out []models.TimeSlot
	for _, id := range ids {
		if s, ok := r.store.slots[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) ListFrom(ctx context.Context, from time.Time) ([]models.TimeSlot, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.TimeSlot
	for _, s := range r.store.slots {
		if !s.StartTime.Before(from) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.slots[id]
	if !ok {
		return slotRepo.ErrNotFound
	}
	if s.IsBooked {
		return slotRepo.ErrSlotBooked
	}
	delete(r.store.slots, id)
	return nil
}

func (r *memSlotRepo) EnsureIndexes() error { return nil }

type memBookingRepo struct {
	store *memStore
}

func (r *memBookingRepo) Reserve(ctx context.Context, booking *models.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	slot, ok := r.store.slots[booking.TimeSlotID]
	if !ok {
		return bookingRepo.ErrSlotNotFound
	}
	if slot.IsBooked {
		return bookingRepo.ErrSlotAlreadyBooked
	}
	r.store.bookings[booking.ID] = *booking
	slot.IsBooked = true
	slot.BookedBy = booking.UserID
	slot.AssignedSpecialistID = booking.AssignedSpecialistID
	r.store.slots[booking.TimeSlotID] = slot
	return nil
}

func (r *memBookingRepo) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if !b.IsActive() {
		return nil, bookingRepo.ErrInvalidTransition
	}
	b.Status = models.BookingStatusCancelled
	b.UpdatedAt = time.Now().UTC()
	r.store.bookings[bookingID] = b
	if slot, ok := r.store.slots[b.TimeSlotID]; ok {
		slot.IsBooked = false
		slot.BookedBy = ""
		slot.AssignedSpecialistID = ""
		r.store.slots[b.TimeSlotID] = slot
	}
	return &b, nil
}

func (r *memBookingRepo) UpdateStatus(ctx context.Context, bookingID, to string, allowedFrom []string) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	allowed := false
	for _, from := range allowedFrom {
		if b.Status == from {
			allowed = true
		}
	}
	if !allowed {
		return nil, bookingRepo.ErrInvalidTransition
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	r.store.bookings[bookingID] = b
	return &b, nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *memBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Booking
	for _, b := range r.store.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListActive(ctx context.Context) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Booking
	for _, b := range r.store.bookings {
		if b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) EnsureIndexes() error { return nil }

// memSpecialistRepo serves a fixed roster in insertion order, matching the
// stable ordering contract of the Mongo repository.
type memSpecialistRepo struct {
	specialists []models.Specialist
}

func (r *memSpecialistRepo) Create(ctx context.Context, sp models.Specialist) (string, error) {
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	r.specialists = append(r.specialists, sp)
	return sp.ID, nil
}

func (r *memSpecialistRepo) GetByID(ctx context.Context, id string) (*models.Specialist, error) {
	for i := range r.specialists {
		if r.specialists[i].ID == id {
			return &r.specialists[i], nil
		}
	}
	return nil, fmt.Errorf("specialist %s not found", id)
}

func (r *memSpecialistRepo) ListAvailable(ctx context.Context) ([]models.Specialist, error) {
	var out []models.Specialist
	for _, sp := range r.specialists {
		if sp.IsAvailable {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (r *memSpecialistRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	for i := range r.specialists {
		if r.specialists[i].ID == id {
			r.specialists[i].IsAvailable = available
			return nil
		}
	}
	return fmt.Errorf("specialist %s not found", id)
}

func (r *memSpecialistRepo) SetSchedule(ctx context.Context, id string, schedule []models.ScheduleRange) error {
	for i := range r.specialists {
		if r.specialists[i].ID == id {
			r.specialists[i].Schedule = schedule
			return nil
		}
	}
	return fmt.Errorf("specialist %s not found", id)
}

func (r *memSpecialistRepo) EnsureIndexes() error { return nil }

// fakeProvisioner records meeting calls and can be told to fail.
type fakeProvisioner struct {
	mu      sync.Mutex
	fail    bool
	created []string
	deleted []string
}

func (p *fakeProvisioner) CreateMeeting(ctx context.Context, topic string, start time.Time, durationMinutes int) (*models.Meeting, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return nil, fmt.Errorf("provisioner unavailable")
	}
	m := &models.Meeting{
		ID:              uuid.New().String(),
		Topic:           topic,
		JoinURL:         "https://meet.example/" + topic,
		StartTime:       start,
		DurationMinutes: durationMinutes,
	}
	p.created = append(p.created, m.ID)
	return m, nil
}

func (p *fakeProvisioner) DeleteMeeting(ctx context.Context, meetingID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, meetingID)
	return nil
}

// fakePublisher records published routing keys.
type fakePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *fakePublisher) Publish(ctx context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

// fakeReminder records scheduled reminders.
type fakeReminder struct {
	mu       sync.Mutex
	bookings []string
}

func (r *fakeReminder) ScheduleReminder(ctx context.Context, booking *models.Booking, slot models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, booking.ID)
	return nil
}
