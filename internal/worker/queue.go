package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisQueue carries document-creation events on Redis lists and fans out
// live updates over PubSub. It backs both the service.EventQueue and
// service.Publisher interfaces.
type RedisQueue struct {
	rdb *redis.Client
}

// NewRedisQueue creates a new RedisQueue.
func NewRedisQueue(rdb *redis.Client) *RedisQueue {
	return &RedisQueue{rdb: rdb}
}

// Enqueue pushes a JSON-encoded payload onto the named queue.
func (q *RedisQueue) Enqueue(ctx context.Context, queue string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := q.rdb.RPush(ctx, queue, raw).Err(); err != nil {
		return fmt.Errorf("push event: %w", err)
	}
	return nil
}

// Publish broadcasts a JSON-encoded payload on the named PubSub channel.
func (q *RedisQueue) Publish(ctx context.Context, channel string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return q.rdb.Publish(ctx, channel, raw).Err()
}
