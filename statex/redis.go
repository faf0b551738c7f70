package statex

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ethanz-code/appkit/core/errors"
)

// RedisOptions configures the Redis persister.
type RedisOptions struct {
	Addr     string        // host:port
	Password string        // Optional
	DB       int           // Redis database index
	Prefix   string        // Key prefix (default: "statex:")
	TTL      time.Duration // Snapshot expiry; 0 keeps snapshots forever
}

// RedisPersister stores snapshots in Redis.
type RedisPersister struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisPersister creates a persister backed by a new Redis client.
func NewRedisPersister(opts RedisOptions) *RedisPersister {
	if opts.Prefix == "" {
		opts.Prefix = "statex:"
	}
	return &RedisPersister{
		rdb: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		prefix: opts.Prefix,
		ttl:    opts.TTL,
	}
}

// Save writes the snapshot, refreshing the TTL.
func (p *RedisPersister) Save(ctx context.Context, key string, data []byte) error {
	return p.rdb.Set(ctx, p.prefix+key, data, p.ttl).Err()
}

// Load returns the snapshot, mapping a Redis miss to NOT_FOUND.
func (p *RedisPersister) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := p.rdb.Get(ctx, p.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, errors.Newf(errors.CodeNotFound, "no snapshot for %q", key)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes the snapshot.
func (p *RedisPersister) Delete(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, p.prefix+key).Err()
}

// Ping checks the connection.
func (p *RedisPersister) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

// Close closes the underlying client.
func (p *RedisPersister) Close() error {
	return p.rdb.Close()
}
