package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"contentgenius/internal/app/config"

	"github.com/go-redis/redis/v8"
)

const rateLimitPrefix = "ratelimit:"

type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := &Client{cfg: cfg}

	redisClient := redis.NewClient(&redis.Options{
		Addr:        cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Username:    cfg.User,
		Password:    cfg.Password,
		DB:          0,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	client.client = redisClient

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cant ping redis: %w", err)
	}

	return client, nil
}

// Hit counts one request against key in a fixed window and returns the
// number of requests seen in the current window. A counter left without an
// expiry gets one on the next hit.
func (c *Client) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := rateLimitPrefix + key

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, fullKey)
		ttl = pipe.TTL(ctx, fullKey)
		return nil
	})
	if err != nil {
		return 0, err
	}

	count := incr.Val()
	if ttl.Val() < 0 {
		if err := c.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
