package audiocache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/eslsoft/lingoguru/internal/repository"
)

const redisKeyPrefix = "lingoguru:audio:"

type redisCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedis connects to redis and returns a shared cache. The cleanup func
// closes the client.
func NewRedis(addr, password string, db int, ttl time.Duration) (repository.AudioCache, func(), error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisCache{rdb: rdb, ttl: ttl}, func() { _ = rdb.Close() }, nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return raw, true, nil
}

func (c *redisCache) Put(ctx context.Context, key string, audio []byte) error {
	if err := c.rdb.Set(ctx, redisKeyPrefix+key, audio, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
