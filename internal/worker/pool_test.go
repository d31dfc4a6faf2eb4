package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"gympos/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFake struct {
	mu      sync.Mutex
	calls   int
	results []error
}

func (h *handlerFake) Process(context.Context, json.RawMessage) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	var err error
	if h.calls < len(h.results) {
		err = h.results[h.calls]
	}
	h.calls++
	return err
}

type dlqEntry struct {
	queue, jobType, reason string
	attempts               int
}

type dlqFake struct {
	entries []dlqEntry
}

func (d *dlqFake) Send(_ context.Context, queue, jobType string, _ json.RawMessage, reason string, attempts int) {
	d.entries = append(d.entries, dlqEntry{queue: queue, jobType: jobType, reason: reason, attempts: attempts})
}

func rawJob(t *testing.T, jobType string) string {
	t.Helper()
	b, err := json.Marshal(Job{Type: jobType, Payload: json.RawMessage(`{"cierre_id":"x"}`)})
	require.NoError(t, err)
	return string(b)
}

func fastRetries(t *testing.T) {
	prev := retryBackoff
	retryBackoff = time.Millisecond
	t.Cleanup(func() { retryBackoff = prev })
}

func TestProcessJob(t *testing.T) {
	fastRetries(t)
	errBroker := errors.New("broker down")

	tests := []struct {
		name      string
		jobType   string
		results   []error
		wantCalls int
		wantDLQ   *dlqEntry
	}{
		{name: "success first try", jobType: JobCierre, wantCalls: 1},
		{name: "success after retry", jobType: JobCierre, results: []error{errBroker}, wantCalls: 2},
		{
			name:      "exhausted retries",
			jobType:   JobEmail,
			results:   []error{errBroker, errBroker, errBroker},
			wantCalls: maxAttempts,
			wantDLQ:   &dlqEntry{queue: QueueEmail, jobType: JobEmail, reason: "broker down", attempts: maxAttempts},
		},
		{
			name:      "permanent skips retries",
			jobType:   JobCierre,
			results:   []error{infra.Permanent(errors.New("bad payload"))},
			wantCalls: 1,
			wantDLQ:   &dlqEntry{queue: QueueCierre, jobType: JobCierre, reason: "bad payload", attempts: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &handlerFake{results: tt.results}
			handlers := &WorkerHandlers{Cierre: h, Email: h}
			dlq := &dlqFake{}
			queue := QueueCierre
			if tt.jobType == JobEmail {
				queue = QueueEmail
			}

			processJob(context.Background(), handlers, dlq, queue, rawJob(t, tt.jobType))

			assert.Equal(t, tt.wantCalls, h.calls)
			if tt.wantDLQ == nil {
				assert.Empty(t, dlq.entries)
				return
			}
			require.Len(t, dlq.entries, 1)
			assert.Equal(t, *tt.wantDLQ, dlq.entries[0])
		})
	}
}

func TestProcessJob_Unroutable(t *testing.T) {
	dlq := &dlqFake{}
	handlers := &WorkerHandlers{Cierre: &handlerFake{}}

	processJob(context.Background(), handlers, dlq, QueueEmail, "not json")
	processJob(context.Background(), handlers, dlq, QueueEmail, rawJob(t, JobEmail))
	processJob(context.Background(), handlers, dlq, QueueCierre, rawJob(t, "desconocido"))

	require.Len(t, dlq.entries, 3)
	assert.Contains(t, dlq.entries[0].reason, "invalid envelope")
	assert.Equal(t, "no handler for job type", dlq.entries[1].reason)
	assert.Equal(t, "desconocido", dlq.entries[2].jobType)
}

func TestWithRetry_StopsOnCancel(t *testing.T) {
	prev := retryBackoff
	retryBackoff = time.Hour
	t.Cleanup(func() { retryBackoff = prev })

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := withRetry(ctx, 3, func(int) error {
		calls++
		cancel()
		return errors.New("smtp timeout")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "smtp timeout")
	assert.Equal(t, 1, calls)
}
