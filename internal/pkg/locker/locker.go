package locker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrLocked = errors.New("resource is locked")

type LockerRedis struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

func NewLockerRedis(client redis.UniversalClient, expiry time.Duration) (*LockerRedis, error) {
	if client == nil {
		return nil, errors.New("locker: nil redis client")
	}
	pool := goredis.NewPool(client)
	return &LockerRedis{rs: redsync.New(pool), expiry: expiry}, nil
}

// TryLock takes key without waiting. The lock is extended every half expiry
// until the returned func releases it.
func (l *LockerRedis) TryLock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex(key, redsync.WithExpiry(l.expiry), redsync.WithTries(1))
	if err := mutex.TryLockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.As(err, &taken) || errors.Is(err, redsync.ErrFailed) {
			return nil, ErrLocked
		}
		return nil, err
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		l.keepAlive(mutex, key, done)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-stopped
			// the request context may be gone by now
			if _, err := mutex.UnlockContext(context.Background()); err != nil {
				zap.L().Warn("unlock failed", zap.String("key", key), zap.Error(err))
			}
		})
	}, nil
}

func (l *LockerRedis) keepAlive(mutex *redsync.Mutex, key string, done <-chan struct{}) {
	interval := l.expiry / 2
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if ok, err := mutex.ExtendContext(context.Background()); !ok || err != nil {
				zap.L().Warn("extend lock failed", zap.String("key", key), zap.Error(err))
				return
			}
		}
	}
}
