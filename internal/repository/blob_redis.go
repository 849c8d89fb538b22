package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisBlobStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisBlobStore ttl 为 0 时不过期
func NewRedisBlobStore(client *redis.Client, prefix string, ttl time.Duration) BlobStore {
	return &redisBlobStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *redisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBlobNotFound
	}
	return data, err
}

func (s *redisBlobStore) Put(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, s.prefix+key, data, s.ttl).Err()
}

func (s *redisBlobStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
