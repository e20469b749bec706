package kvstore

// KVStore defines a durable string key-value store with atomic whole-value get/set.
type KVStore interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Close() error
}
