package scheduling

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"brightpath/models"
)

func futureSlot(id string, startHour int) models.TimeSlot {
	start := time.Now().UTC().AddDate(0, 0, 1).Truncate(time.Hour).Add(time.Duration(startHour) * time.Hour)
	return models.TimeSlot{
		ID:        id,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestSlotCacheAppliesEventsInOrder(t *testing.T) {
	cache := NewSlotCache(nil, nil)

	a := futureSlot("a", 9)
	b := futureSlot("b", 10)
	cache.apply(models.SlotEvent{Type: models.SlotEventUpsert, SlotID: a.ID, Slot: &a})
	cache.apply(models.SlotEvent{Type: models.SlotEventUpsert, SlotID: b.ID, Slot: &b})

	booked := a
	booked.IsBooked = true
	cache.apply(models.SlotEvent{Type: models.SlotEventUpsert, SlotID: a.ID, Slot: &booked})
	cache.apply(models.SlotEvent{Type: models.SlotEventDelete, SlotID: b.ID})

	got, ok := cache.Get("a")
	if !ok || !got.IsBooked {
		t.Errorf("slot a = %+v, ok=%v; want booked", got, ok)
	}
	if _, ok := cache.Get("b"); ok {
		t.Error("slot b should have been deleted")
	}
	if avail := cache.GetAvailable(); len(avail) != 0 {
		t.Errorf("GetAvailable() returned %d slots, want 0", len(avail))
	}
	if all := cache.GetAll(); len(all) != 1 {
		t.Errorf("GetAll() returned %d slots, want 1", len(all))
	}
}

func TestSlotCacheReloadReplacesContents(t *testing.T) {
	store := newMemStore()
	fresh := store.addSlot(futureSlot("fresh", 9))
	cache := NewSlotCache(nil, &memSlotRepo{store: store})

	stale := futureSlot("stale", 11)
	cache.apply(models.SlotEvent{Type: models.SlotEventUpsert, SlotID: stale.ID, Slot: &stale})

	if err := cache.reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := cache.Get(stale.ID); ok {
		t.Error("reload kept an entry absent from the store")
	}
	if _, ok := cache.Get(fresh.ID); !ok {
		t.Error("reload dropped a stored slot")
	}
}

func TestSlotCacheGetInRange(t *testing.T) {
	cache := NewSlotCache(nil, nil)
	a := futureSlot("a", 9)
	b := futureSlot("b", 14)
	for _, s := range []models.TimeSlot{a, b} {
		s := s
		cache.apply(models.SlotEvent{Type: models.SlotEventUpsert, SlotID: s.ID, Slot: &s})
	}

	got := cache.GetInRange(a.StartTime.Add(-time.Hour), a.EndTime)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("GetInRange returned %v, want just slot a", got)
	}
	// A range touching a slot's start boundary excludes it.
	if got := cache.GetInRange(a.StartTime.Add(-2*time.Hour), a.StartTime); len(got) != 0 {
		t.Errorf("boundary range returned %v, want none", got)
	}
}

func TestSlotCacheEvictBefore(t *testing.T) {
	cache := NewSlotCache(nil, nil)
	old := models.TimeSlot{ID: "old", StartTime: time.Now().UTC().Add(-48 * time.Hour)}
	old.EndTime = old.StartTime.Add(time.Hour)
	keep := futureSlot("keep", 9)
	for _, s := range []models.TimeSlot{old, keep} {
		s := s
		cache.apply(models.SlotEvent{Type: models.SlotEventUpsert, SlotID: s.ID, Slot: &s})
	}

	if n := cache.EvictBefore(time.Now().UTC()); n != 1 {
		t.Errorf("EvictBefore evicted %d, want 1", n)
	}
	if _, ok := cache.Get("old"); ok {
		t.Error("stale slot survived eviction")
	}
	if _, ok := cache.Get("keep"); !ok {
		t.Error("upcoming slot was evicted")
	}
}

// scriptedFeed fails its first failSubs subscriptions, then hands out a fresh
// buffered channel per subscription.
type scriptedFeed struct {
	mu       sync.Mutex
	failSubs int
	subs     int
	ch       chan models.SlotEvent
}

func (f *scriptedFeed) Subscribe(ctx context.Context) (<-chan models.SlotEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs++
	if f.subs <= f.failSubs {
		return nil, fmt.Errorf("stream unavailable")
	}
	f.ch = make(chan models.SlotEvent, 8)
	return f.ch, nil
}

func (f *scriptedFeed) subscriptions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs
}

func (f *scriptedFeed) events() chan models.SlotEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ch
}

func TestSlotCacheRunRecoversFromFeedFailures(t *testing.T) {
	store := newMemStore()
	stored := store.addSlot(futureSlot("stored", 9))
	feed := &scriptedFeed{failSubs: 1}

	cache := NewSlotCache(feed, &memSlotRepo{store: store})
	cache.retryWait = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cache.Run(ctx)

	// The first subscribe fails; the cache retries and reloads from the store.
	waitFor(t, func() bool {
		_, ok := cache.Get(stored.ID)
		return feed.subscriptions() >= 2 && ok
	})

	// Events flow into the snapshot.
	live := futureSlot("live", 13)
	feed.events() <- models.SlotEvent{Type: models.SlotEventUpsert, SlotID: live.ID, Slot: &live}
	waitFor(t, func() bool {
		_, ok := cache.Get(live.ID)
		return ok
	})

	// A closed feed triggers a resubscription whose reload fully replaces the
	// cache, dropping the event-only entry absent from the store.
	close(feed.events())
	waitFor(t, func() bool {
		_, storedOK := cache.Get(stored.ID)
		_, liveOK := cache.Get(live.ID)
		return feed.subscriptions() >= 3 && storedOK && !liveOK
	})
}
