package kvstore

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Entry is the single-table row model backing the store.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// gormStore implements Store on a local SQLite file through GORM.
type gormStore struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates
// the entries table. Use ":memory:" for a throwaway store.
func Open(path string) (Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open kv store at %s: %w", path, err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an existing GORM connection as a Store.
func NewGormStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv store: %w", err)
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) Get(key string) (string, error) {
	var entry Entry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

func (s *gormStore) Set(key, value string) error {
	entry := Entry{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}

func (s *gormStore) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&Entry{}).Error
}

func (s *gormStore) Clear() error {
	return s.db.Exec("DELETE FROM kv_entries").Error
}
