package handler

import (
	"context"
	"net/http"
	"time"

	"gympos/internal/repository"
	"gympos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Health returns a JSON health check response.
// Checks store and Redis connectivity; never exposes credentials or internals.
// rdb may be nil when the server runs without Redis; otherwise the number of
// dead-lettered jobs is reported too.
func Health(store repository.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storeStatus := "connected"
		if store.Ping(ctx) != nil {
			storeStatus = "error"
		}

		redisStatus := "disabled"
		var deadLetters int64
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			} else {
				dlq := worker.NewDLQ(rdb)
				for _, q := range []string{worker.QueueCierre, worker.QueueEmail} {
					if n, err := dlq.Length(ctx, q); err == nil {
						deadLetters += n
					}
				}
			}
		}

		status := http.StatusOK
		if storeStatus != "connected" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":           status == http.StatusOK,
			"store":        storeStatus,
			"redis":        redisStatus,
			"dead_letters": deadLetters,
		})
	}
}
