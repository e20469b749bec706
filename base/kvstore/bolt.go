package kvstore

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

const defaultBucket = "shawty"

type boltStoreImpl struct {
	db         *bbolt.DB
	bucketName []byte
}

// NewBolt creates a file-backed KVStore at path. Parent directories are created.
func NewBolt(path string) (KVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fail to open bolt db %s", path)
	}

	bucketName := []byte(defaultBucket)
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &boltStoreImpl{
		db:         db,
		bucketName: bucketName,
	}, nil
}

func (s *boltStoreImpl) Get(key string) (string, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		// bolt values are only valid inside the transaction.
		if v := tx.Bucket(s.bucketName).Get([]byte(key)); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", ErrKeyNotExist
	}

	return string(value), nil
}

func (s *boltStoreImpl) Set(key string, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucketName).Put([]byte(key), []byte(value))
	})
}

func (s *boltStoreImpl) Close() error {
	if err := s.db.Sync(); err != nil {
		return err
	}
	return s.db.Close()
}
