package cart

import (
	"context"
	"fmt"

	"github.com/grocer-next/internal/cache"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each owner's cart in two Redis keys under the shared
// cache prefix. Entries have no TTL; carts survive restarts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a Redis client as a cart store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) itemsKey(owner string) string {
	return cache.BuildKey(fmt.Sprintf("cart:items:%s", owner))
}

func (s *RedisStore) wholesaleKey(owner string) string {
	return cache.BuildKey(fmt.Sprintf("cart:wholesale:%s", owner))
}

// LoadItems reads and parses the items slot.
func (s *RedisStore) LoadItems(ctx context.Context, owner string) ([]LineItem, bool, error) {
	val, err := s.client.Get(ctx, s.itemsKey(owner)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	items, ok := decodeItems(owner, val)
	return items, ok, nil
}

// SaveItems writes the items slot.
func (s *RedisStore) SaveItems(ctx context.Context, owner string, items []LineItem) error {
	payload, err := encodeItems(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.itemsKey(owner), payload, 0).Err()
}

// LoadWholesale reads and parses the pricing-mode slot.
func (s *RedisStore) LoadWholesale(ctx context.Context, owner string) (bool, bool, error) {
	val, err := s.client.Get(ctx, s.wholesaleKey(owner)).Result()
	if err == redis.Nil {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	on, ok := decodeWholesale(owner, val)
	return on, ok, nil
}

// SaveWholesale writes the pricing-mode slot.
func (s *RedisStore) SaveWholesale(ctx context.Context, owner string, on bool) error {
	return s.client.Set(ctx, s.wholesaleKey(owner), encodeWholesale(on), 0).Err()
}

// Clear removes both slots for owner.
func (s *RedisStore) Clear(ctx context.Context, owner string) error {
	return s.client.Del(ctx, s.itemsKey(owner), s.wholesaleKey(owner)).Err()
}
