package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	replyPrefix  = "softphone:reply:"
	replyListTTL = 30 * time.Second
	popInterval  = time.Second
)

// RedisQueue carries jobs over Redis lists. Consumption is BRPOP so ordering
// per tube is FIFO; replies go through per-request inboxes.
type RedisQueue struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisQueue wraps an existing client.
func NewRedisQueue(client *redis.Client, logger *zap.Logger) *RedisQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisQueue{client: client, logger: logger}
}

// Publish pushes one job onto the tube.
func (q *RedisQueue) Publish(ctx context.Context, tube string, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, tube, payload).Err()
}

// Request publishes with a fresh reply inbox and blocks for the reply.
func (q *RedisQueue) Request(ctx context.Context, tube string, job Job, timeout time.Duration) (Result, error) {
	job.ReplyTo = replyPrefix + uuid.NewString()

	if err := q.Publish(ctx, tube, job); err != nil {
		return Result{}, err
	}

	vals, err := q.client.BRPop(ctx, timeout, job.ReplyTo).Result()
	if err != nil {
		return Result{}, err
	}

	var res Result
	if err := json.Unmarshal([]byte(vals[1]), &res); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Consume pops jobs one at a time until the context is canceled. Replies are
// pushed to the job's inbox with a short TTL so abandoned requests do not
// accumulate.
func (q *RedisQueue) Consume(ctx context.Context, tube string, handle Handler) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		vals, err := q.client.BRPop(ctx, popInterval, tube).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			q.logger.Warn("queue pop failed", zap.String("tube", tube), zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(popInterval):
			}
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(vals[1]), &job); err != nil {
			q.logger.Warn("discarding malformed job", zap.String("tube", tube), zap.Error(err))
			continue
		}

		res := handle(ctx, job)
		if job.ReplyTo == "" || res == nil {
			continue
		}

		payload, err := json.Marshal(res)
		if err != nil {
			q.logger.Warn("reply encode failed", zap.String("job_id", job.ID), zap.Error(err))
			continue
		}
		pipe := q.client.Pipeline()
		pipe.LPush(ctx, job.ReplyTo, payload)
		pipe.Expire(ctx, job.ReplyTo, replyListTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			q.logger.Warn("reply push failed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
}
