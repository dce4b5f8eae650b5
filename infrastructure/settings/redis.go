package settings

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Get(ctx context.Context, clientKey, key string) (string, bool, error) {
	return s.RawGet(ctx, ScopedKey(clientKey, key))
}

func (s *redisStore) Set(ctx context.Context, clientKey, key, value string) error {
	return s.RawSet(ctx, ScopedKey(clientKey, key), value)
}

func (s *redisStore) Del(ctx context.Context, clientKey, key string) error {
	return s.RawDel(ctx, ScopedKey(clientKey, key))
}

func (s *redisStore) RawGet(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (s *redisStore) RawSet(ctx context.Context, key, value string) error {
	// Settings have no expiry; they live until explicitly deleted or the
	// tenant is uninstalled.
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *redisStore) RawDel(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *redisStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}
