// Package cache guarda leituras do dashboard no Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache é o contrato usado pelos serviços; Noop desliga o cache.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	keyspaceUser  = "user"
	keyspaceStaff = "staff"
)

func UserKey(userID string) string { return "dashboard:" + keyspaceUser + ":" + userID }

// StaffKey guarda o funcionário resolvido como logado
func StaffKey() string { return "dashboard:" + keyspaceStaff + ":logged-in" }

// LookupFunc recebe o keyspace e o resultado ("hit", "miss", "error") de cada Get
type LookupFunc func(keyspace, result string)

type RedisCache struct {
	R        *redis.Client
	OnLookup LookupFunc
}

func NewRedisCache(r *redis.Client, onLookup LookupFunc) *RedisCache {
	return &RedisCache{R: r, OnLookup: onLookup}
}

func (c *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observe(key, "miss")
		return false, nil
	}
	if err != nil {
		c.observe(key, "error")
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		c.observe(key, "error")
		return false, err
	}
	c.observe(key, "hit")
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, key, b, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.R.Del(ctx, keys...).Err()
}

func (c *RedisCache) observe(key, result string) {
	if c.OnLookup != nil {
		c.OnLookup(keyspace(key), result)
	}
}

// keyspace extrai o segmento do meio de "dashboard:<keyspace>:..."
func keyspace(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 3 || parts[0] != "dashboard" {
		return "other"
	}
	return parts[1]
}

// Noop nunca encontra nada e aceita qualquer escrita.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error               { return nil }
