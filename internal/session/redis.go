package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisStore(client *redis.Client, notifier *Notifier) *RedisStore {
	return &RedisStore{
		client:   client,
		notifier: notifier,
		baseTTL:  30 * 24 * time.Hour,
	}
}

type RedisStore struct {
	client   *redis.Client
	notifier *Notifier
	baseTTL  time.Duration
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, storeKey(sessionID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	jitter := time.Duration(rand.Intn(60)) * time.Minute
	ttl := s.baseTTL + jitter
	if err := s.client.Set(ctx, storeKey(sessionID, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	if s.notifier != nil {
		s.notifier.Publish(Change{SessionID: sessionID, Key: key})
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.client.Del(ctx, storeKey(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	if s.notifier != nil {
		s.notifier.Publish(Change{SessionID: sessionID, Key: key})
	}
	return nil
}

func storeKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}
