package meeting

import (
	"context"
	"time"

	"brightpath/models"
)

// Provisioner creates and tears down meeting rooms on an external video
// service. CreateMeeting is called synchronously inside the booking protocol;
// DeleteMeeting is a best-effort cleanup call.
type Provisioner interface {
	CreateMeeting(ctx context.Context, topic string, start time.Time, durationMinutes int) (*models.Meeting, error)
	DeleteMeeting(ctx context.Context, meetingID string) error
}
