package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"visit-schedule-service/internal/platform/obs"
	"visit-schedule-service/internal/ports"
)

// RedisDurationCache keeps resolved leg durations in Redis with a TTL.
type RedisDurationCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDurationCache(client *redis.Client, ttl time.Duration) *RedisDurationCache {
	return &RedisDurationCache{Client: client, TTL: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return client, nil
}

func (c *RedisDurationCache) Get(ctx context.Context, key ports.DurationKey) (_ int, _ bool, err error) {
	defer obs.Time(ctx, "duration.cache.Get")(&err)

	if c.Client == nil {
		return 0, false, errors.New("duration cache: redis client is nil")
	}
	if err := validDurationKey(key); err != nil {
		return 0, false, err
	}

	k := durationKeyString(key)
	v, err := c.Client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get duration cache key=%q: %w", k, err)
	}

	seconds, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("get duration cache key=%q: parse %q: %w", k, v, err)
	}

	return seconds, true, nil
}

func (c *RedisDurationCache) Put(ctx context.Context, key ports.DurationKey, seconds int) (err error) {
	defer obs.Time(ctx, "duration.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("duration cache: redis client is nil")
	}
	if err := validDurationKey(key); err != nil {
		return err
	}

	k := durationKeyString(key)
	if err := c.Client.Set(ctx, k, strconv.Itoa(seconds), c.TTL).Err(); err != nil {
		return fmt.Errorf("insert duration cache key=%q: %w", k, err)
	}

	return nil
}

var (
	_ ports.PlaceCache    = (*SQLPlaceCache)(nil)
	_ ports.PlaceCache    = (*SqlitePlaceCache)(nil)
	_ ports.DurationCache = (*SQLDurationCache)(nil)
	_ ports.DurationCache = (*SqliteDurationCache)(nil)
	_ ports.DurationCache = (*RedisDurationCache)(nil)
)
