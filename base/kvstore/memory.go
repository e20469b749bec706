package kvstore

import "sync"

type memoryStoreImpl struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates a KVStore that lives only as long as the process.
func NewMemory() KVStore {
	return &memoryStoreImpl{
		data: map[string]string{},
	}
}

func (s *memoryStoreImpl) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", ErrKeyNotExist
	}
	return v, nil
}

func (s *memoryStoreImpl) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *memoryStoreImpl) Close() error {
	return nil
}
