// Package denylist remembers session tokens that were ended before their
// expiry, so the authentication gate can refuse them.
package denylist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces deny-list keys in a shared Redis.
const DefaultPrefix = "dealership:revoked:"

// Revoker records and answers token revocations.
type Revoker interface {
	// Revoke denies token until the given instant. Past instants are no-ops.
	Revoke(ctx context.Context, token string, until time.Time) error
	// Revoked reports whether token was revoked and has not yet expired.
	Revoked(ctx context.Context, token string) (bool, error)
}

// Nop is used when no Redis is configured: nothing is ever revoked.
type Nop struct{}

func (Nop) Revoke(context.Context, string, time.Time) error { return nil }

func (Nop) Revoked(context.Context, string) (bool, error) { return false, nil }

// Redis keeps revoked token digests as keys that expire with the token.
type Redis struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedis connects to redisURL (for example redis://:pass@host:6379/0) and
// pings it. An empty prefix selects DefaultPrefix.
func NewRedis(ctx context.Context, redisURL, prefix string) (*Redis, error) {
	const op = "denylist.NewRedis"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewRedisClient(rdb, prefix), nil
}

// NewRedisClient wraps an existing client.
func NewRedisClient(rdb *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Redis{rdb: rdb, prefix: prefix, now: time.Now}
}

// Tokens are stored hashed; the raw bearer value never reaches Redis.
func (r *Redis) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return r.prefix + hex.EncodeToString(sum[:])
}

func (r *Redis) Revoke(ctx context.Context, token string, until time.Time) error {
	const op = "denylist.Redis.Revoke"

	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	if err := r.rdb.Set(ctx, r.key(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Redis) Revoked(ctx context.Context, token string) (bool, error) {
	const op = "denylist.Redis.Revoked"

	err := r.rdb.Get(ctx, r.key(token)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", op, err)
	}
}

// Close releases the Redis connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

var (
	_ Revoker = Nop{}
	_ Revoker = (*Redis)(nil)
)
