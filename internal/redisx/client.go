package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Cache adalah JSON cache sederhana di atas Redis.
// Get mengembalikan false kalau key tidak ada (bukan error).
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis.Get: %w", err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, fmt.Errorf("json.Unmarshal: %w", err)
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}
	if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}
	return nil
}

func (c *Cache) Del(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis.Del: %w", err)
	}
	return nil
}

// Dedup menandai event yang sudah pernah diproses. SETNX supaya atomik:
// pemanggil pertama dapat false, sisanya true.
type Dedup struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDedup(rdb *redis.Client, ttl time.Duration) *Dedup {
	return &Dedup{rdb: rdb, ttl: ttl}
}

func (d *Dedup) SeenBefore(ctx context.Context, key string) (bool, error) {
	set, err := d.rdb.SetNX(ctx, key, "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis.SetNX: %w", err)
	}
	return !set, nil
}
