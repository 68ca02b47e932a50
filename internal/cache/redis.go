package cache

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/filmvibe/app-discover-api/internal/config"
	"github.com/filmvibe/app-discover-api/internal/logging"
	"github.com/filmvibe/app-discover-api/internal/metrics"
	"github.com/filmvibe/app-discover-api/internal/models"
)

const (
	redisBackend = "redis"
	redisPrefix  = "recs:"
)

// RedisStore keeps payloads as JSON with a server-side TTL, so entries are
// shared by every replica.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]models.RankedItem, bool) {
	raw, err := s.client.Get(ctx, redisPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Ctx(ctx).Warn().Err(err).Msg("redis cache read failed, treating as miss")
		}
		metrics.CacheLookupsTotal.WithLabelValues(redisBackend, "miss").Inc()
		return nil, false
	}

	var payload []models.RankedItem
	if err := json.Unmarshal(raw, &payload); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("corrupt cache entry, treating as miss")
		metrics.CacheLookupsTotal.WithLabelValues(redisBackend, "miss").Inc()
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues(redisBackend, "hit").Inc()
	return payload, true
}

func (s *RedisStore) Put(ctx context.Context, key string, payload []models.RankedItem) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("encode cache entry")
		return
	}
	if err := s.client.Set(ctx, redisPrefix+key, raw, s.ttl).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("redis cache write failed")
	}
}

func (s *RedisStore) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, redisPrefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

func (s *RedisStore) Clear(ctx context.Context) {
	keys, err := s.keys(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("redis cache scan failed")
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("redis cache clear failed")
	}
}

// Stats never reports expired entries; redis drops them itself.
func (s *RedisStore) Stats(ctx context.Context) Stats {
	keys, err := s.keys(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("redis cache scan failed")
	}
	size := len(keys)
	metrics.CacheEntries.WithLabelValues(redisBackend).Set(float64(size))
	return Stats{Backend: redisBackend, Size: size, TTLSec: int64(s.ttl.Seconds())}
}
