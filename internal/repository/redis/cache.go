package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a JSON read-through cache. A nil *Cache is valid and always
// calls the loader.
type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
	ttl time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{rdb: client, ttl: ttl}
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}

	return c.rdb.Del(ctx, keys...).Err()
}

func getJSON[T any](ctx context.Context, c *Cache, key string) (T, bool, error) {
	var out T

	b, ok, err := c.get(ctx, key)
	if err != nil || !ok {
		return out, false, err
	}

	if err := json.Unmarshal(b, &out); err != nil {
		return out, false, err
	}

	return out, true, nil
}

// GetOrSetJSON returns the cached value of key or loads, stores and returns
// it for ttl, or the cache default when ttl is zero. Concurrent misses on
// one key share a single load. Redis errors fall through to the loader.
func GetOrSetJSON[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	loader func(ctx context.Context) (T, error),
) (T, error) {
	if c == nil {
		return loader(ctx)
	}

	if v, ok, err := getJSON[T](ctx, c, key); err == nil && ok {
		return v, nil
	}

	vAny, err, _ := c.sf.Do(key, func() (any, error) {
		if v, ok, err := getJSON[T](ctx, c, key); err == nil && ok {
			return v, nil
		}

		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		if ttl <= 0 {
			ttl = c.ttl
		}

		if b, err := json.Marshal(v); err == nil {
			_ = c.rdb.Set(ctx, key, b, ttl).Err()
		}

		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := vAny.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache: unexpected %T for %s", vAny, key)
	}

	return v, nil
}

// InvalidateCourt drops every cached view that includes the court's slots.
func (c *Cache) InvalidateCourt(ctx context.Context, courtID, facilityID int64) error {
	return c.Del(
		ctx,
		KeyCourtSlots(courtID),
		KeyFacilityDetails(facilityID),
		KeyFacilityList(),
	)
}

// InvalidateFacility drops the facility views and the listed courts' slots.
func (c *Cache) InvalidateFacility(ctx context.Context, facilityID int64, courtIDs ...int64) error {
	keys := []string{KeyFacilityDetails(facilityID), KeyFacilityList()}
	for _, id := range courtIDs {
		keys = append(keys, KeyCourtSlots(id))
	}
	return c.Del(ctx, keys...)
}
