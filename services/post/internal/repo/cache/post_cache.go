// Package cache keeps short-lived copies of derived post views in redis.
// Entries are dropped on every write; a miss always falls through to the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"newsdesk/services/post/internal/entity"

	"github.com/redis/go-redis/v9"
)

type PostCache interface {
	WorkingSet(ctx context.Context) ([]*entity.Post, bool)
	SetWorkingSet(ctx context.Context, posts []*entity.Post) error
	Strings(ctx context.Context, key string) ([]string, bool)
	SetStrings(ctx context.Context, key string, values []string) error
	Invalidate(ctx context.Context) error
}

type redisPostCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPostCache returns a no-op cache when rdb is nil.
func NewPostCache(rdb *redis.Client, ttl time.Duration) PostCache {
	if rdb == nil || ttl <= 0 {
		return noopCache{}
	}
	return &redisPostCache{rdb: rdb, ttl: ttl}
}

func getJSON[T any](ctx context.Context, rdb *redis.Client, key string) (T, bool, error) {
	var result T
	value, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return result, false, nil
		}
		return result, false, err
	}
	if err := json.Unmarshal(value, &result); err != nil {
		return result, false, err
	}
	return result, true, nil
}

func (c *redisPostCache) setJSON(ctx context.Context, key string, value interface{}) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, valueJSON, c.ttl).Err()
}

func (c *redisPostCache) WorkingSet(ctx context.Context) ([]*entity.Post, bool) {
	posts, ok, err := getJSON[[]*entity.Post](ctx, c.rdb, WorkingSetKey)
	if err != nil || !ok {
		return nil, false
	}
	return posts, true
}

func (c *redisPostCache) SetWorkingSet(ctx context.Context, posts []*entity.Post) error {
	return c.setJSON(ctx, WorkingSetKey, posts)
}

func (c *redisPostCache) Strings(ctx context.Context, key string) ([]string, bool) {
	values, ok, err := getJSON[[]string](ctx, c.rdb, key)
	if err != nil || !ok {
		return nil, false
	}
	return values, true
}

func (c *redisPostCache) SetStrings(ctx context.Context, key string, values []string) error {
	return c.setJSON(ctx, key, values)
}

func (c *redisPostCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, derivedKeys...).Err()
}

type noopCache struct{}

func (noopCache) WorkingSet(context.Context) ([]*entity.Post, bool) { return nil, false }
func (noopCache) SetWorkingSet(context.Context, []*entity.Post) error { return nil }
func (noopCache) Strings(context.Context, string) ([]string, bool) { return nil, false }
func (noopCache) SetStrings(context.Context, string, []string) error { return nil }
func (noopCache) Invalidate(context.Context) error { return nil }
