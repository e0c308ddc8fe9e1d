package scheduling

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"brightpath/models"
	"brightpath/utils"
)

// SlotFeed delivers ordered upsert/delete events for the slots collection.
// The channel closes when the underlying stream ends.
type SlotFeed interface {
	Subscribe(ctx context.Context) (<-chan models.SlotEvent, error)
}

// SlotLoader provides the full upcoming-slot set, used to rebuild the cache
// after every (re)subscription.
type SlotLoader interface {
	ListFrom(ctx context.Context, from time.Time) ([]models.TimeSlot, error)
}

// SlotCache keeps an in-memory view of upcoming slots current by consuming
// the change feed. It is a read optimization only: booking correctness never
// depends on it, since it can be briefly stale relative to the store.
//
// Only the Run loop mutates the map; every other caller reads snapshots.
type SlotCache struct {
	feed   SlotFeed
	loader SlotLoader

	mu    sync.RWMutex
	slots map[string]models.TimeSlot

	// retryWait is the pause before a resubscription attempt.
	retryWait time.Duration
}

// NewSlotCache constructs an empty cache over the given feed and loader.
func NewSlotCache(feed SlotFeed, loader SlotLoader) *SlotCache {
	return &SlotCache{
		feed:      feed,
		loader:    loader,
		slots:     make(map[string]models.TimeSlot),
		retryWait: 5 * time.Second,
	}
}

// Run subscribes to the feed and applies events until ctx is cancelled.
// A failed or closed subscription keeps the last snapshot serving reads and
// retries; each successful (re)subscription fully replaces the cache contents
// so a reconnect can never merge-corrupt it.
func (c *SlotCache) Run(ctx context.Context) {
	logger := utils.GetLogger()
	for ctx.Err() == nil {
		ch, err := c.feed.Subscribe(ctx)
		if err != nil {
			logger.Warn("slot cache: subscribe failed, serving last snapshot",
				zap.Error(err), zap.Duration("retryIn", c.retryWait))
			c.sleep(ctx)
			continue
		}

		if err := c.reload(ctx); err != nil {
			logger.Error("slot cache: reload failed", zap.Error(err))
		}

		for ev := range ch {
			c.apply(ev)
		}
		if ctx.Err() == nil {
			logger.Warn("slot cache: feed closed, serving last snapshot",
				zap.Duration("retryIn", c.retryWait))
			c.sleep(ctx)
		}
	}
}

func (c *SlotCache) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(c.retryWait):
	}
}

// reload replaces the whole cache with the store's current upcoming slots.
func (c *SlotCache) reload(ctx context.Context) error {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	slots, err := c.loader.ListFrom(ctx, startOfDay)
	if err != nil {
		return err
	}
	fresh := make(map[string]models.TimeSlot, len(slots))
	for _, s := range slots {
		fresh[s.ID] = s
	}
	c.mu.Lock()
	c.slots = fresh
	c.mu.Unlock()
	return nil
}

// apply updates the cache from one change event, in event order.
func (c *SlotCache) apply(ev models.SlotEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch ev.Type {
	case models.SlotEventUpsert:
		if ev.Slot != nil {
			c.slots[ev.SlotID] = *ev.Slot
		}
	case models.SlotEventDelete:
		delete(c.slots, ev.SlotID)
	}
}

// Get returns the cached slot, if present.
func (c *SlotCache) Get(id string) (models.TimeSlot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.slots[id]
	return s, ok
}

// GetAll returns a snapshot of all cached slots.
func (c *SlotCache) GetAll() []models.TimeSlot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.TimeSlot, 0, len(c.slots))
	for _, s := range c.slots {
		out = append(out, s)
	}
	return out
}

// GetAvailable returns a snapshot of cached slots without an active booking.
func (c *SlotCache) GetAvailable() []models.TimeSlot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.TimeSlot
	for _, s := range c.slots {
		if !s.IsBooked {
			out = append(out, s)
		}
	}
	return out
}

// GetInRange returns a snapshot of cached slots overlapping [start, end).
func (c *SlotCache) GetInRange(start, end time.Time) []models.TimeSlot {
	want := models.Interval{Start: start, End: end}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.TimeSlot
	for _, s := range c.slots {
		if Overlaps(s.Interval(), want) {
			out = append(out, s)
		}
	}
	return out
}

// EvictBefore drops cached slots that started before t and returns the count.
// Run daily so the cache tracks the feed's startTime >= today filter.
func (c *SlotCache) EvictBefore(t time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, s := range c.slots {
		if s.StartTime.Before(t) {
			delete(c.slots, id)
			n++
		}
	}
	return n
}
