// Package cache provides the optional Redis cache in front of the public read surface.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	publicKeyPrefix = "public:%s"
	rateKeyPrefix   = "rl:%s:%s"
)

var errDisabled = errors.New("cache disabled")

var (
	lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_cache_lookups_total",
		Help: "Public cache lookups by collection and result.",
	}, []string{"collection", "result"})
	redisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_redis_errors_total",
		Help: "Redis command failures by command.",
	}, []string{"command"})
)

// Cache is a Redis cache-aside store. A nil *Cache, or one without a client, is a no-op
// and every read goes straight to the source.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if client != nil {
		client.AddHook(metricsHook{})
	}
	return &Cache{client: client, ttl: ttl}
}

// Connect dials addr (host:port or redis:// URL). When Redis cannot be reached it logs and returns
// a disabled cache.
func Connect(ctx context.Context, addr string, ttl time.Duration) *Cache {
	if addr == "" {
		return New(nil, ttl)
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Warn().Err(err).Msg("invalid REDIS_URL, continuing without cache")
			return New(nil, ttl)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed, continuing without cache")
		_ = client.Close()
		return New(nil, ttl)
	}

	log.Info().Msg("Redis connected successfully")
	return New(client, ttl)
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// PublicKey is the cache key of the public list of a collection.
func PublicKey(collection string) string {
	return fmt.Sprintf(publicKeyPrefix, collection)
}

// GetJSON reads key into dest. It reports false on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	s, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores v under key with the cache TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) error {
	if !c.Enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, c.ttl).Err()
}

// PublicList serves the public list of collection from the cache, calling fetch on a miss.
// fetch must write into dest. Cache errors fall through to fetch.
func (c *Cache) PublicList(ctx context.Context, collection string, dest any, fetch func() error) error {
	key := PublicKey(collection)

	found, err := c.GetJSON(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("collection", collection).Msg("cache read failed")
	}
	if found {
		lookups.WithLabelValues(collection, "hit").Inc()
		return nil
	}
	if c.Enabled() {
		lookups.WithLabelValues(collection, "miss").Inc()
	}

	if err := fetch(); err != nil {
		return err
	}

	if err := c.SetJSON(ctx, key, dest); err != nil {
		log.Warn().Err(err).Str("collection", collection).Msg("cache write failed")
	}
	return nil
}

// Invalidate drops the cached public list of collection. Repositories call it after every write.
func (c *Cache) Invalidate(ctx context.Context, collection string) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Del(ctx, PublicKey(collection)).Err(); err != nil {
		log.Warn().Err(err).Str("collection", collection).Msg("cache invalidation failed")
	}
}

// RateKey is the counter key of client id under resource.
func RateKey(resource, id string) string {
	return fmt.Sprintf(rateKeyPrefix, resource, id)
}

// CountHit increments the request counter of id under resource and returns the count in the
// current window. The counter expires window after its first hit.
func (c *Cache) CountHit(ctx context.Context, resource, id string, window time.Duration) (int64, error) {
	if !c.Enabled() {
		return 0, errDisabled
	}
	key := RateKey(resource, id)
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			// Without a TTL the counter would block id for good.
			_ = c.client.Del(ctx, key).Err()
			return 0, err
		}
	}
	return count, nil
}

type metricsHook struct{}

func (metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			redisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			redisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}
