package cron

import (
	"context"
	"encoding/json"
	"time"

	"coachbar/config"
	suggestionRepo "coachbar/database/repository/suggestion"
	"coachbar/services/tasks"
	"coachbar/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitCompletionWorker runs the async worker that marks confirmed bookings
// completed after their class end time.
func InitCompletionWorker(repo suggestionRepo.SuggestionRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSuggestionComplete, handleCompletionTask(repo))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting completion worker")

		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("completion worker failed to start",
				zap.Int("attempt", attempt), zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("completion worker exhausted retries")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

func handleCompletionTask(repo suggestionRepo.SuggestionRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.CompletionPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("completion task has invalid payload", zap.Error(err))
			return err
		}

		if err := repo.MarkCompleted(p.BookingID); err != nil {
			utils.GetLogger().Error("failed to mark booking completed",
				zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}
		utils.GetLogger().Info("booking marked completed", zap.String("bookingID", p.BookingID))
		return nil
	}
}
