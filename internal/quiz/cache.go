package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const gameCacheKeyPrefix = "quiz:game:"

// gameCache stores rendered game views. Games never change after creation,
// so entries only expire by TTL.
type gameCache interface {
	Get(ctx context.Context, gameID uint) (gameView, bool, error)
	Set(ctx context.Context, gameID uint, view gameView) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, uint) (gameView, bool, error) {
	return gameView{}, false, nil
}

func (noopCache) Set(context.Context, uint, gameView) error {
	return nil
}

// RedisCache keeps rendered game views in Redis under quiz:game:<id>.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to the Redis instance at rawURL.
func NewRedisCache(ctx context.Context, rawURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, gameID uint) (gameView, bool, error) {
	data, err := c.client.Get(ctx, gameCacheKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gameView{}, false, nil
	}
	if err != nil {
		return gameView{}, false, err
	}
	var view gameView
	if err := json.Unmarshal(data, &view); err != nil {
		return gameView{}, false, err
	}
	return view, true, nil
}

func (c *RedisCache) Set(ctx context.Context, gameID uint, view gameView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, gameCacheKey(gameID), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func gameCacheKey(gameID uint) string {
	return gameCacheKeyPrefix + strconv.FormatUint(uint64(gameID), 10)
}
