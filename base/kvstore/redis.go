package kvstore

import (
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

type redisStoreImpl struct {
	client redis.Cmdable
	prefix string
}

// NewRedis creates a KVStore backed by redis. Keys are namespaced by prefix.
func NewRedis(client redis.Cmdable, prefix string) KVStore {
	return &redisStoreImpl{
		client: client,
		prefix: prefix,
	}
}

func (s *redisStoreImpl) Get(key string) (string, error) {
	v, err := s.client.Get(s.prefix + key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotExist
	} else if err != nil {
		return "", errors.Wrapf(err, "fail to get key %s", key)
	}

	return v, nil
}

// Set stores value without expiration; history must survive across sessions.
func (s *redisStoreImpl) Set(key string, value string) error {
	return s.client.Set(s.prefix+key, value, 0).Err()
}

func (s *redisStoreImpl) Close() error {
	if c, ok := s.client.(*redis.Client); ok {
		return c.Close()
	}
	return nil
}
