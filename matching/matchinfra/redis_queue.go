package matchinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ray3n-Hamd1/kariera/matching"
)

// RedisIngestQueue implements matching.IngestQueue on a Redis list. Triggers
// are pushed with LPUSH and the worker consumes them with blocking BRPOP, so
// multiple workers can share one queue without double-processing.
type RedisIngestQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisIngestQueue creates a Redis-backed ingest queue.
func NewRedisIngestQueue(client *redis.Client, queueName string) matching.IngestQueue {
	return &RedisIngestQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue pushes an ingestion trigger onto the queue.
func (q *RedisIngestQueue) Enqueue(ctx context.Context, trigger matching.IngestTrigger) error {
	data, err := json.Marshal(trigger)
	if err != nil {
		return fmt.Errorf("marshal ingest trigger: %w", err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue ingest trigger: %w", err)
	}

	return nil
}

// Dequeue blocks up to timeout for the next trigger. A timeout with nothing
// queued returns (nil, nil).
func (q *RedisIngestQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when the timeout elapses
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue ingest trigger: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// Size returns the number of pending triggers.
func (q *RedisIngestQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

// Ping checks that the Redis connection is alive.
func (q *RedisIngestQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
