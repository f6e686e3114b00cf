package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"coachbar/config"

	"github.com/hibiken/asynq"
)

const TypeSuggestionComplete = "suggestion:complete"

// CompletionPayload identifies the confirmed booking to mark completed.
type CompletionPayload struct {
	BookingID string `json:"bookingId"`
}

// NewCompletionTask builds the deferred task that flips a confirmed booking
// to completed once its class end time passes.
func NewCompletionTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(CompletionPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSuggestionComplete, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(5)}
	return task, opts, nil
}

// AsynqCompletionScheduler enqueues completion tasks on the task queue. It
// implements negotiation.CompletionScheduler.
type AsynqCompletionScheduler struct {
	client *asynq.Client
}

// NewAsynqCompletionScheduler creates a scheduler backed by the configured
// task queue Redis DB.
func NewAsynqCompletionScheduler() *AsynqCompletionScheduler {
	return &AsynqCompletionScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPass,
			DB:       config.AppConfig.RedisTaskDB,
		}),
	}
}

func (s *AsynqCompletionScheduler) ScheduleCompletion(bookingID string, at time.Time) error {
	task, opts, err := NewCompletionTask(bookingID, at)
	if err != nil {
		return fmt.Errorf("failed to build completion task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue completion task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (s *AsynqCompletionScheduler) Close() error {
	return s.client.Close()
}
