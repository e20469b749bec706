package lock

import "time"

// DistributedLocker defines an interface for a lock shared by every holder of the same key.
type DistributedLocker interface {
	Lock(key string, ttl, retryDelay time.Duration, retryCount int) (Lock, error)
}

// Lock defines an interface for a held lock.
type Lock interface {
	Unlock() error
}
