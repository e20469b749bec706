package kvstore

import "github.com/pkg/errors"

// ErrKeyNotExist is returned by Get when the key has never been set.
var ErrKeyNotExist = errors.New("key does not exist")

// IsErrKeyNotExist checks if key does not exist.
func IsErrKeyNotExist(err error) bool {
	return errors.Is(err, ErrKeyNotExist)
}
