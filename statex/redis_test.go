package statex

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/ethanz-code/appkit/core/errors"
	"github.com/ethanz-code/appkit/testingx"
)

func newRedisPersister(t *testing.T, opts RedisOptions) (*miniredis.Miniredis, *RedisPersister) {
	t.Helper()
	mr := miniredis.RunT(t)
	opts.Addr = mr.Addr()
	p := NewRedisPersister(opts)
	t.Cleanup(func() { p.Close() })
	return mr, p
}

func TestRedisPersisterRoundTrip(t *testing.T) {
	_, p := newRedisPersister(t, RedisOptions{})
	ctx := context.Background()

	if err := p.Save(ctx, "session", []byte("snapshot")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := p.Load(ctx, "session")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != "snapshot" {
		t.Errorf("Load() = %q", data)
	}
}

func TestRedisPersisterMissIsNotFound(t *testing.T) {
	_, p := newRedisPersister(t, RedisOptions{})
	_, err := p.Load(context.Background(), "missing")
	testingx.AssertCode(t, err, errors.CodeNotFound)
}

func TestRedisPersisterDelete(t *testing.T) {
	_, p := newRedisPersister(t, RedisOptions{})
	ctx := context.Background()

	p.Save(ctx, "session", []byte("snapshot"))
	if err := p.Delete(ctx, "session"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, err := p.Load(ctx, "session")
	testingx.AssertCode(t, err, errors.CodeNotFound)
}

func TestRedisPersisterKeyPrefix(t *testing.T) {
	mr, p := newRedisPersister(t, RedisOptions{Prefix: "app:"})
	ctx := context.Background()

	p.Save(ctx, "session", []byte("snapshot"))
	if !mr.Exists("app:session") {
		t.Errorf("keys = %v, want app:session", mr.Keys())
	}
}

func TestRedisPersisterTTL(t *testing.T) {
	mr, p := newRedisPersister(t, RedisOptions{TTL: time.Minute})
	ctx := context.Background()

	p.Save(ctx, "session", []byte("snapshot"))
	mr.FastForward(2 * time.Minute)

	_, err := p.Load(ctx, "session")
	testingx.AssertCode(t, err, errors.CodeNotFound)
}

func TestStoreOnRedis(t *testing.T) {
	_, p := newRedisPersister(t, RedisOptions{})
	ctx := context.Background()

	store, err := New(ctx, "session", session{}, WithPersister(p))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := store.Set(ctx, session{Token: "tok-9"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	rehydrated, err := New(ctx, "session", session{}, WithPersister(p))
	if err != nil {
		t.Fatalf("New() rehydrate error = %v", err)
	}
	if got := rehydrated.Get(); got.Token != "tok-9" {
		t.Errorf("rehydrated state = %+v", got)
	}
}
