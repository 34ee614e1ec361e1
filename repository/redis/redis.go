// Package redis is a WordCache adapter backed by a shared redis instance,
// for deployments running more than one server replica.
package redis

import (
	"context"
	"time"

	redis9 "github.com/redis/go-redis/v9"
)

const keyPrefix = "taboo:recent:"

// DefaultTTL matches the badger adapter.
const DefaultTTL = 24 * time.Hour

type WordRepo struct {
	cl  *redis9.Client
	ttl time.Duration
}

// New connects to the redis instance at url (redis:// form).
func New(ctx context.Context, url string, ttl time.Duration) (*WordRepo, error) {
	opts, err := redis9.ParseURL(url)
	if err != nil {
		return nil, err
	}
	cl := redis9.NewClient(opts)
	if err = cl.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &WordRepo{cl: cl, ttl: ttl}, nil
}

// Add implements repository.WordCache.
func (r *WordRepo) Add(ctx context.Context, topic, word string) error {
	key := keyPrefix + topic
	if err := r.cl.SAdd(ctx, key, word).Err(); err != nil {
		return err
	}
	// the whole topic set shares one expiry; good enough for a repeat guard
	return r.cl.Expire(ctx, key, r.ttl).Err()
}

// Recent implements repository.WordCache.
func (r *WordRepo) Recent(ctx context.Context, topic string) ([]string, error) {
	return r.cl.SMembers(ctx, keyPrefix+topic).Result()
}

func (r *WordRepo) Close() error {
	return r.cl.Close()
}
