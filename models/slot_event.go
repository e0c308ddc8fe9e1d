package models

// Slot change-feed event types.
const (
	SlotEventUpsert = "upsert"
	SlotEventDelete = "delete"
)

// SlotEvent is one ordered change notification from the slots collection.
// Slot is nil for delete events.
type SlotEvent struct {
	Type   string
	SlotID string
	Slot   *TimeSlot
}
