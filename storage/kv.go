package storage

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is the durable key-value contract the cart ledger and token store
// persist through. Delete must remove the key outright so "absent" stays
// distinguishable from "present and zero".
type KV interface {
	Set(key string, value interface{}) error
	Get(key string, out interface{}) (bool, error)
	Delete(key string) error
}

type kvEntry struct {
	Key   string         `gorm:"primaryKey;column:key"`
	Value datatypes.JSON `gorm:"column:value"`
}

func (kvEntry) TableName() string { return "kv_entries" }

// Store is a sqlite-backed KV. Values are stored as JSON.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite file backing the store
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := kvEntry{Key: key, Value: datatypes.JSON(raw)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}

// Get unmarshals the stored value into out. The bool return is false when
// the key is absent.
func (s *Store) Get(key string, out interface{}) (bool, error) {
	var entry kvEntry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(entry.Value, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&kvEntry{}).Error
}
