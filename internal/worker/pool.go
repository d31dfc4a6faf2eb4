package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gympos/internal/infra"
	"gympos/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueCierre = "jobs:cierre"
	QueueEmail  = "jobs:email"

	JobCierre = "cierre"
	JobEmail  = "email"
)

// maxAttempts per job before it goes to the dead letter queue.
const maxAttempts = 3

// retryBackoff is the first retry delay; it doubles on every attempt.
var retryBackoff = time.Second

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// NotificarCierre queues the report of a complete close. Only the id travels:
// the worker reads the snapshot back from the store.
func (d *Dispatcher) NotificarCierre(ctx context.Context, c *model.CierreCaja) error {
	return d.enqueue(ctx, QueueCierre, JobCierre, CierreJobPayload{CierreID: c.ID.String()})
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// JobHandler processes one job payload. Errors marked with infra.Permanent are
// not retried.
type JobHandler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// WorkerHandlers maps job types to their handlers.
type WorkerHandlers struct {
	Cierre JobHandler
	Email  JobHandler
}

func (h *WorkerHandlers) lookup(jobType string) JobHandler {
	switch jobType {
	case JobCierre:
		return h.Cierre
	case JobEmail:
		return h.Email
	}
	return nil
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, so idle workers cost no CPU. The returned
// function blocks until every worker has seen ctx cancelled.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) (wait func()) {
	dlq := NewDLQ(rdb)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, rdb, handlers, dlq, id)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
	return wg.Wait
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, dlq DeadLetters, id int) {
	queues := []string{QueueCierre, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, dlq, result[0], result[1])
		}
	}
}

// processJob runs a job with exponential backoff and moves it to the dead
// letter queue once it has failed maxAttempts times, or at once when the
// failure is permanent.
func processJob(ctx context.Context, handlers *WorkerHandlers, dlq DeadLetters, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		dlq.Send(ctx, queue, "", json.RawMessage(raw), "invalid envelope: "+err.Error(), 0)
		return
	}
	h := handlers.lookup(job.Type)
	if h == nil {
		dlq.Send(ctx, queue, job.Type, job.Payload, "no handler for job type", 0)
		return
	}

	attempts := 0
	err := withRetry(ctx, maxAttempts, func(attempt int) error {
		attempts = attempt + 1
		err := h.Process(ctx, job.Payload)
		if err != nil && !infra.IsPermanent(err) {
			log.Warn().Err(err).Str("type", job.Type).Int("attempt", attempts).Msg("job failed, retrying")
		}
		return err
	})
	if err != nil {
		dlq.Send(ctx, queue, job.Type, job.Payload, err.Error(), attempts)
		return
	}
	log.Info().Str("type", job.Type).Str("queue", queue).Int("attempts", attempts).Msg("job processed")
}

// withRetry calls fn up to maxAttempts times with exponential backoff
// (retryBackoff, 2×retryBackoff, ...). Permanent errors stop it early.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := retryBackoff * time.Duration(1<<uint(i-1))
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
			case <-time.After(wait):
			}
		}
		err := fn(i)
		if err == nil {
			return nil
		}
		lastErr = err
		if infra.IsPermanent(err) {
			return err
		}
	}
	return lastErr
}
