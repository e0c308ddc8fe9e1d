package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"brightpath/config"
	"brightpath/models"
)

const TypeBookingReminder = "booking:reminder"

// ReminderPayload is the task body for a booking reminder.
type ReminderPayload struct {
	BookingID string    `json:"bookingId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	SlotStart time.Time `json:"slotStart"`
}

func reminderRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
}

// AsynqReminderScheduler enqueues reminder tasks to fire ahead of the
// booking start. It satisfies the scheduling engine's ReminderScheduler.
type AsynqReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

// NewReminderScheduler builds a scheduler with the configured lead time.
func NewReminderScheduler() *AsynqReminderScheduler {
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	if lead <= 0 {
		lead = 30 * time.Minute
	}
	return &AsynqReminderScheduler{
		client: asynq.NewClient(reminderRedisOpts()),
		lead:   lead,
	}
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, booking *models.Booking, slot models.TimeSlot) error {
	fireAt := slot.StartTime.Add(-s.lead)
	if !fireAt.After(time.Now()) {
		// Too close to the start; nothing to remind about.
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{
		BookingID: booking.ID,
		UserName:  booking.UserName,
		UserEmail: booking.UserEmail,
		SlotStart: slot.StartTime,
	})
	if err != nil {
		return fmt.Errorf("marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeBookingReminder, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker() {
	srv := asynq.NewServer(
		reminderRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, handleReminderTask)

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleReminderTask fires when a booking reminder comes due. Delivery to the
// parent is handled by the notification pipeline outside this service; here
// the due reminder is only recorded.
func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	var p ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[ReminderHandler] invalid payload: %v", err)
		return err
	}

	log.Printf("[ReminderHandler] reminder due for booking %s (%s, starts %s)",
		p.BookingID, p.UserEmail, p.SlotStart.Format(time.RFC3339))
	return nil
}
