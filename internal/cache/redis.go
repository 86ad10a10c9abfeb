package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"solarne-backend/internal/models"
)

// Client caches the public solutions listing. The listing is the hot
// read of the site, so it gets a short TTL and explicit invalidation on
// every write.
type Client interface {
	GetSolutions() ([]models.Solution, bool, error)
	SetSolutions(solutions []models.Solution) error
	InvalidateSolutions() error
	Close() error
}

const (
	solutionsKey = "solarne:solutions:list"
	solutionsTTL = 60 * time.Second
)

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisClient(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{rdb: rdb}, nil
}

func (c *RedisCache) GetSolutions() ([]models.Solution, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := c.rdb.Get(ctx, solutionsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var solutions []models.Solution
	if err := msgpack.Unmarshal(data, &solutions); err != nil {
		return nil, false, err
	}
	return solutions, true, nil
}

func (c *RedisCache) SetSolutions(solutions []models.Solution) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := msgpack.Marshal(solutions)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, solutionsKey, data, solutionsTTL).Err()
}

func (c *RedisCache) InvalidateSolutions() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return c.rdb.Del(ctx, solutionsKey).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
