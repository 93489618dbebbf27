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

const classCreatedPollTimeout = 1 * time.Second

// ClassCreatedWorker consumes class-created events and runs the
// class-creation reactor: owner summary denormalization and invite minting.
type ClassCreatedWorker struct {
	rdb     *redis.Client
	classes *service.ClassService
	log     zerolog.Logger
}

// NewClassCreatedWorker creates a new ClassCreatedWorker.
func NewClassCreatedWorker(rdb *redis.Client, classes *service.ClassService, log zerolog.Logger) *ClassCreatedWorker {
	return &ClassCreatedWorker{
		rdb:     rdb,
		classes: classes,
		log:     log.With().Str("component", "class_created_worker").Logger(),
	}
}

// Start runs the consume loop until ctx is cancelled. Events that fail on
// storage errors are requeued; events for missing documents are dropped by
// the reactor itself.
func (w *ClassCreatedWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ClassCreatedWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("ClassCreatedWorker stopped")
			return
		default:
		}

		item, err := w.rdb.BLPop(ctx, classCreatedPollTimeout, config.QueueKey.ClassCreatedQueue).Result()
		if err != nil {
			if err != redis.Nil && ctx.Err() == nil {
				w.log.Error().Err(err).Msg("BLPop error")
			}
			continue
		}
		if len(item) < 2 {
			continue
		}

		var event service.ClassCreatedEvent
		if err := json.Unmarshal([]byte(item[1]), &event); err != nil {
			w.log.Error().Err(err).Msg("Invalid JSON payload, dropping event")
			continue
		}

		if err := w.classes.ReflectClassCreation(ctx, event.ClassID); err != nil {
			w.log.Error().Err(err).Str("class_id", event.ClassID).
				Msg("Reactor failed — requeueing event")
			w.rdb.RPush(ctx, config.QueueKey.ClassCreatedQueue, item[1])
		}
	}
}
