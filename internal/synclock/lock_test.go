package synclock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, ttl time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisLocker(rdb, ttl), s
}

func testExclusive(t *testing.T, l Locker) {
	ctx := context.Background()

	release, err := l.Acquire(ctx, "2024-01-15")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "2024-01-15")
	assert.ErrorIs(t, err, ErrLocked)

	other, err := l.Acquire(ctx, "2024-01-16")
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := l.Acquire(ctx, "2024-01-15")
	require.NoError(t, err)
	again()
}

func TestMemoryLocker(t *testing.T) {
	testExclusive(t, NewMemoryLocker())
}

func TestRedisLocker(t *testing.T) {
	l, _ := newRedisLocker(t, time.Minute)
	testExclusive(t, l)
}

func TestRedisLocker_ExpiresAfterTTL(t *testing.T) {
	l, s := newRedisLocker(t, time.Minute)
	ctx := context.Background()

	_, err := l.Acquire(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.True(t, s.Exists(keyPrefix+"2024-01-15"))

	s.FastForward(2 * time.Minute)

	release, err := l.Acquire(ctx, "2024-01-15")
	require.NoError(t, err)
	release()
}

func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	l, s := newRedisLocker(t, time.Minute)
	ctx := context.Background()

	stale, err := l.Acquire(ctx, "2024-01-15")
	require.NoError(t, err)

	s.FastForward(2 * time.Minute)
	_, err = l.Acquire(ctx, "2024-01-15")
	require.NoError(t, err)

	stale()
	assert.True(t, s.Exists(keyPrefix+"2024-01-15"))
}
