package worker

// dlq.go: Dead Letter Queue.
// Jobs that exceed the maximum retry count, or fail permanently, are moved
// here for manual inspection. One Redis list per source queue: dlq:{queue}

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps a failed job with metadata for debugging.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // ISO 8601
	Attempts      int             `json:"attempts"`
}

// DeadLetters receives jobs the pool gave up on.
type DeadLetters interface {
	Send(ctx context.Context, queue, jobType string, payload json.RawMessage, reason string, attempts int)
}

// DLQ is the Redis-backed DeadLetters.
type DLQ struct {
	rdb *redis.Client
}

func NewDLQ(rdb *redis.Client) *DLQ { return &DLQ{rdb: rdb} }

// Send pushes a failed job to the dead letter queue. Failures are only logged:
// there is nowhere else to put the job.
func (d *DLQ) Send(ctx context.Context, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	// the job's ctx may already be cancelled on shutdown
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	dlqKey := DLQPrefix + queue
	if err := d.rdb.LPush(pushCtx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: failed to push to DLQ")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job moved to dead letter queue")
}

// Length returns the number of entries in a DLQ for monitoring.
func (d *DLQ) Length(ctx context.Context, queue string) (int64, error) {
	return d.rdb.LLen(ctx, DLQPrefix+queue).Result()
}
