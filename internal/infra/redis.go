package infra

import (
	"context"
	"encoding/json"
	"time"

	"gympos/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// CatalogoKey holds the JSON-encoded list of drinks on sale.
const CatalogoKey = "catalogo:bebidas"

// CatalogoCache keeps the customer-facing drink list in Redis. Cache failures
// are logged and treated as misses: the store stays the source of truth.
type CatalogoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalogoCache(rdb *redis.Client, ttl time.Duration) *CatalogoCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogoCache{rdb: rdb, ttl: ttl}
}

func (c *CatalogoCache) Get(ctx context.Context) ([]model.Bebida, bool) {
	raw, err := c.rdb.Get(ctx, CatalogoKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("catalogo cache: get failed")
		}
		return nil, false
	}
	var bebidas []model.Bebida
	if err := json.Unmarshal(raw, &bebidas); err != nil {
		log.Warn().Err(err).Msg("catalogo cache: corrupt entry")
		return nil, false
	}
	return bebidas, true
}

func (c *CatalogoCache) Set(ctx context.Context, bebidas []model.Bebida) {
	data, err := json.Marshal(bebidas)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, CatalogoKey, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("catalogo cache: set failed")
	}
}

func (c *CatalogoCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, CatalogoKey).Err(); err != nil {
		log.Warn().Err(err).Msg("catalogo cache: invalidate failed")
	}
}
