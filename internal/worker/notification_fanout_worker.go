package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smitedu/institute-backend/internal/config"
	"github.com/smitedu/institute-backend/internal/model"
)

const FanoutPollTimeout = 1 * time.Second

// NotificationFanoutWorker drains the fanout queue and publishes each
// notification to the broadcast channel that WebSocket connections
// subscribe to. Queueing decouples the HTTP write path from delivery:
// a slow subscriber never blocks a create.
type NotificationFanoutWorker struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewNotificationFanoutWorker creates a new NotificationFanoutWorker.
func NewNotificationFanoutWorker(rdb *redis.Client, log zerolog.Logger) *NotificationFanoutWorker {
	return &NotificationFanoutWorker{
		rdb: rdb,
		log: log.With().Str("component", "notification_fanout_worker").Logger(),
	}
}

// Start runs the fanout loop until the context is cancelled. Remaining
// queued items survive shutdown in Redis and are drained on next start.
func (w *NotificationFanoutWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotificationFanoutWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return

		default:
			item, err := w.rdb.BLPop(ctx, FanoutPollTimeout, config.WorkerKey.NotificationFanoutQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			w.publish(ctx, []byte(item[1]))
		}
	}
}

func (w *NotificationFanoutWorker) publish(ctx context.Context, payload []byte) {
	// Validate before publishing so subscribers only ever see well-formed
	// notifications; a corrupt queue entry is dropped with a log line.
	var n model.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		w.log.Error().Err(err).Msg("Invalid JSON payload, dropping")
		return
	}

	receivers, err := w.rdb.Publish(ctx, config.CacheKey.NotificationChannel(), payload).Result()
	if err != nil {
		w.log.Error().Err(err).Int("notification_id", n.ID).Msg("Publish failed, requeueing")
		w.rdb.RPush(ctx, config.WorkerKey.NotificationFanoutQueue, payload)
		return
	}

	w.log.Debug().
		Int("notification_id", n.ID).
		Int64("receivers", receivers).
		Msg("Notification fanned out")
}
