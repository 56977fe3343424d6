package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, expiry time.Duration) (*miniredis.Miniredis, *LockerRedis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l, err := NewLockerRedis(client, expiry)
	require.NoError(t, err)
	return s, l
}

func TestLockerRedis_TryLock(t *testing.T) {
	ctx := context.Background()
	_, l := newTestLocker(t, time.Minute)

	unlock, err := l.TryLock(ctx, "lock:star-checkout:s1")
	require.NoError(t, err)

	_, err = l.TryLock(ctx, "lock:star-checkout:s1")
	assert.ErrorIs(t, err, ErrLocked)

	other, err := l.TryLock(ctx, "lock:star-checkout:s2")
	require.NoError(t, err)
	other()

	unlock()
	unlock()

	again, err := l.TryLock(ctx, "lock:star-checkout:s1")
	require.NoError(t, err)
	again()
}

func TestLockerRedis_ExtendsWhileHeld(t *testing.T) {
	const key = "lock:star-checkout:s1"
	s, l := newTestLocker(t, 400*time.Millisecond)

	unlock, err := l.TryLock(context.Background(), key)
	require.NoError(t, err)
	defer unlock()

	// most of the expiry is used up, only an extension brings it back
	s.FastForward(300 * time.Millisecond)
	require.LessOrEqual(t, s.TTL(key), 100*time.Millisecond)

	assert.Eventually(t, func() bool {
		return s.TTL(key) > 200*time.Millisecond
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLockerRedis_NilClient(t *testing.T) {
	_, err := NewLockerRedis(nil, time.Second)
	assert.Error(t, err)
}
