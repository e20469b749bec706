package kvstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry defines model for a stored key-value pair.
type Entry struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name.
func (Entry) TableName() string {
	return "kv_entries"
}

type gormStoreImpl struct {
	db *gorm.DB
}

// NewGorm creates a KVStore backed by a SQL database through gorm.
func NewGorm(db *gorm.DB) (KVStore, error) {
	s := &gormStoreImpl{
		db: db,
	}
	return s, s.migrate()
}

func (s *gormStoreImpl) migrate() error {
	return s.db.AutoMigrate(&Entry{})
}

func (s *gormStoreImpl) Get(key string) (string, error) {
	var entry Entry
	err := s.db.Where(&Entry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrKeyNotExist
	} else if err != nil {
		return "", errors.Wrapf(err, "fail to get key %s", key)
	}

	return entry.Value, nil
}

func (s *gormStoreImpl) Set(key string, value string) error {
	entry := Entry{
		Key:   key,
		Value: value,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *gormStoreImpl) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
