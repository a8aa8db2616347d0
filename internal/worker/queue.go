package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey = "pharmacy:tasks"
	dlqKey   = "pharmacy:tasks:dead"

	popTimeout = 5 * time.Second
)

// Queue enqueues background tasks. Services hold this interface so unit tests
// can substitute a recorder.
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
}

// RedisQueue is a Redis-list backed task queue. Producers LPUSH, workers
// BRPOP, so tasks are delivered in FIFO order.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, task Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, queueKey, raw).Err()
}

// Dequeue blocks up to popTimeout waiting for a task. Returns (nil, nil) on
// timeout so the caller can re-check its context.
func (q *RedisQueue) Dequeue(ctx context.Context) (*Task, error) {
	res, err := q.client.BRPop(ctx, popTimeout, queueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	// BRPOP returns [key, value].
	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// MoveToDLQ parks a task that exhausted its retries.
func (q *RedisQueue) MoveToDLQ(ctx context.Context, task Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, dlqKey, raw).Err()
}

// DLQLength reports the number of dead tasks, exposed on the health endpoint.
func (q *RedisQueue) DLQLength(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, dlqKey).Result()
}
