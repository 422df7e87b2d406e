// Package cache is the optional Redis layer in front of list-by-owner reads.
// When Redis is unreachable at startup the cache degrades to a silent
// pass-through, so development setups need no Redis at all.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"planboard/internal/config"
)

// ListCache is what the resource handlers see. A nil *Redis satisfies it as
// a no-op.
type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Disabled is a ListCache that never stores anything. Handlers fall back to
// it when no cache is wired, e.g. in tests.
var Disabled ListCache = (*Redis)(nil)

type Redis struct {
	client *redis.Client
	logger *log.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.CacheConfig, logger *log.Logger) *Redis {
	host := strings.TrimSpace(cfg.RedisHost)
	if host == "" {
		return &Redis{client: nil, logger: logger}
	}
	port := strings.TrimSpace(cfg.RedisPort)
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		return &Redis{client: nil, logger: logger}
	}

	return &Redis{client: client, logger: logger}
}

func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] Redis error, bypassing cache: %v", err)
	}
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
	}
	return nil
}

// Invalidate drops every cached list for a table. Keys are
// "list:<table>:<owner>"; writes that do not know the owner (update/delete
// by id) pass the table prefix with a trailing wildcard.
func (r *Redis) Invalidate(ctx context.Context, key string) error {
	if r.isUnavailable() {
		return nil
	}

	if !strings.HasSuffix(key, "*") {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			r.warnUnavailableOnce(err)
		}
		return nil
	}

	iter := r.client.Scan(ctx, 0, key, 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			r.warnUnavailableOnce(err)
			return nil
		}
	}
	if err := iter.Err(); err != nil {
		r.warnUnavailableOnce(err)
	}
	return nil
}
