package lock

import (
	"sync"
	"time"
)

type localLockerImpl struct {
	mu    sync.Mutex
	held  map[string]time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

type localLockImpl struct {
	locker *localLockerImpl
	key    string
	until  time.Time
}

// NewLocal creates a DistributedLocker scoped to the current process.
// A held key expires after its ttl so a lost Unlock cannot wedge it forever.
func NewLocal() DistributedLocker {
	return &localLockerImpl{
		held:  map[string]time.Time{},
		now:   time.Now,
		sleep: time.Sleep,
	}
}

func (l *localLockerImpl) Lock(key string, ttl, retryDelay time.Duration, retryCount int) (Lock, error) {
	for attempt := 0; ; attempt++ {
		if lk, ok := l.tryLock(key, ttl); ok {
			return lk, nil
		}
		if attempt >= retryCount {
			return nil, ErrLockHeld
		}
		l.sleep(retryDelay)
	}
}

func (l *localLockerImpl) tryLock(key string, ttl time.Duration) (*localLockImpl, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if until, ok := l.held[key]; ok && now.Before(until) {
		return nil, false
	}

	until := now.Add(ttl)
	l.held[key] = until
	return &localLockImpl{locker: l, key: key, until: until}, true
}

func (l *localLockImpl) Unlock() error {
	l.locker.mu.Lock()
	defer l.locker.mu.Unlock()

	// the key may have expired and been taken by another holder.
	if until, ok := l.locker.held[l.key]; ok && until.Equal(l.until) {
		delete(l.locker.held, l.key)
	}
	return nil
}
