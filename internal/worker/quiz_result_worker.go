package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/classpad-app/classpad-backend/internal/config"
	"github.com/classpad-app/classpad-backend/internal/service"
)

const quizResultPollTimeout = 1 * time.Second

// QuizResultWorker consumes quiz-submitted events and runs the quiz-result
// reactor, crediting the submitting user's group score.
type QuizResultWorker struct {
	rdb     *redis.Client
	scoring *service.ScoringService
	log     zerolog.Logger
}

// NewQuizResultWorker creates a new QuizResultWorker.
func NewQuizResultWorker(rdb *redis.Client, scoring *service.ScoringService, log zerolog.Logger) *QuizResultWorker {
	return &QuizResultWorker{
		rdb:     rdb,
		scoring: scoring,
		log:     log.With().Str("component", "quiz_result_worker").Logger(),
	}
}

// Start runs the consume loop until ctx is cancelled. Score increments are
// applied once per queue element; a storage failure requeues the event.
func (w *QuizResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("QuizResultWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("QuizResultWorker stopped")
			return
		default:
		}

		item, err := w.rdb.BLPop(ctx, quizResultPollTimeout, config.QueueKey.QuizSubmittedQueue).Result()
		if err != nil {
			if err != redis.Nil && ctx.Err() == nil {
				w.log.Error().Err(err).Msg("BLPop error")
			}
			continue
		}
		if len(item) < 2 {
			continue
		}

		var event service.QuizSubmittedEvent
		if err := json.Unmarshal([]byte(item[1]), &event); err != nil {
			w.log.Error().Err(err).Msg("Invalid JSON payload, dropping event")
			continue
		}

		if err := w.scoring.ApplyQuizResult(ctx, event.ClassID, event.UserID, event.Stars); err != nil {
			w.log.Error().Err(err).Str("class_id", event.ClassID).
				Msg("Reactor failed — requeueing event")
			w.rdb.RPush(ctx, config.QueueKey.QuizSubmittedQueue, item[1])
		}
	}
}
