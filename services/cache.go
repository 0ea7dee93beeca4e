package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cityflow/simulator/log"
)

const (
	pingAttempts = 5
	pingBackoff  = 2 * time.Second
)

// CacheService wraps an optional Redis client. With no client every
// operation is a no-op, so callers never need to check for Redis.
type CacheService struct {
	client *redis.Client
}

// NewCacheService connects to url. An empty url yields a disabled cache.
// On ping failure the disabled cache is returned together with the error.
func NewCacheService(ctx context.Context, url string) (*CacheService, error) {
	if url == "" {
		return &CacheService{}, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return &CacheService{}, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	// Retry covers sidecar and compose start-up ordering.
	var lastErr error
	for i := range pingAttempts {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = client.Ping(pingCtx).Err()
		cancel()
		if lastErr == nil {
			log.Info("redis connected", log.String("addr", opts.Addr))
			return &CacheService{client: client}, nil
		}
		log.Warn("redis ping failed",
			log.Int("attempt", i+1),
			log.Int("attempts", pingAttempts),
			log.ErrorField(lastErr))
		select {
		case <-ctx.Done():
			_ = client.Close()
			return &CacheService{}, ctx.Err()
		case <-time.After(pingBackoff):
		}
	}
	_ = client.Close()
	return &CacheService{}, fmt.Errorf("redis ping failed after %d attempts: %w", pingAttempts, lastErr)
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

// Get decodes the JSON value stored at key into dest and reports whether the
// key existed.
func (s *CacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !s.Available() {
		return false, nil
	}
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Publish(ctx context.Context, channel string, message any) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, channel, data).Err()
}

func (s *CacheService) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}
