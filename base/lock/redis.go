package lock

import (
	"time"

	rlock "github.com/bsm/redis-lock"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

// DefaultRetryDelay defines default retry delay time for lock.
const DefaultRetryDelay = 100 * time.Millisecond

// ErrLockHeld is returned when the lock is still held by someone else after all retries.
var ErrLockHeld = errors.New("lock is held")

type redisLockerImpl struct {
	client redis.Cmdable
}

type redisLockImpl struct {
	locker *rlock.Locker
}

// NewRedis creates a DistributedLocker shared across processes through redis.
func NewRedis(cmdable redis.Cmdable) DistributedLocker {
	return &redisLockerImpl{
		client: cmdable,
	}
}

func (l *redisLockerImpl) Lock(key string, ttl, retryDelay time.Duration, retryCount int) (Lock, error) {
	opt := rlock.Options{
		LockTimeout: ttl,
		RetryCount:  retryCount,
		RetryDelay:  retryDelay,
	}

	locker := rlock.New(l.client, key, &opt)
	ok, err := locker.Lock()
	if err != nil {
		return nil, errors.Wrap(err, "fail to lock")
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return &redisLockImpl{locker: locker}, nil
}

func (l *redisLockImpl) Unlock() error {
	return l.locker.Unlock()
}
