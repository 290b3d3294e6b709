// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/podworks/pod-backend/internal/config"
)

// Client is a thin JSON cache over redis. When redis is unreachable at
// startup the client degrades to a no-op so dashboards fall back to direct
// queries instead of failing.
type Client struct {
	rdb *redis.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, caching disabled")
		return &Client{}
	}

	return &Client{rdb: rdb}
}

func (c *Client) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}

// Get unmarshals the cached JSON value for key into dest. Returns false on
// miss or when caching is disabled.
func (c *Client) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache value unmarshal failed")
		return false
	}

	return true
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache value marshal failed")
		return
	}

	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

func (c *Client) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logrus.WithError(err).Warn("Cache delete failed")
	}
}
