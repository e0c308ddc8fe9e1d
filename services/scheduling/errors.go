package scheduling

import "fmt"

// Error is a typed engine failure with a stable code. The expected failures
// (slot taken, no specialist, bad transition) are returned to the caller for
// retry-with-different-input or user-facing messaging; nothing is swallowed.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrSlotNotFound          = &Error{Code: "SLOT_NOT_FOUND", Message: "timeslot does not exist"}
	ErrSlotAlreadyBooked     = &Error{Code: "SLOT_ALREADY_BOOKED", Message: "timeslot already has an active booking"}
	ErrNoSpecialistAvailable = &Error{Code: "NO_SPECIALIST_AVAILABLE", Message: "no eligible specialist for this interval"}
	ErrMeetingProvisioning   = &Error{Code: "MEETING_PROVISIONING_FAILED", Message: "external meeting could not be provisioned"}
	ErrBookingNotFound       = &Error{Code: "BOOKING_NOT_FOUND", Message: "booking does not exist"}
	ErrInvalidTransition     = &Error{Code: "INVALID_STATE_TRANSITION", Message: "booking status does not allow this transition"}
	ErrStoreUnavailable      = &Error{Code: "STORE_UNAVAILABLE", Message: "document store is unavailable"}
)
