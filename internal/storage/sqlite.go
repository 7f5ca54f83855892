package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is a single stored key-value pair
type Entry struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName keeps the table name independent of the struct name
func (Entry) TableName() string {
	return "kv_entries"
}

// SQLiteKV stores values in a local SQLite database
type SQLiteKV struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at dbPath and runs migrations
func OpenSQLite(dbPath string) (*SQLiteKV, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Open database connection
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run auto-migrations
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteKV{db: db}, nil
}

// DefaultDatabasePath returns ~/.taskdash/taskdash.db
func DefaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".taskdash", "taskdash.db"), nil
}

func (k *SQLiteKV) Get(key string) (string, bool, error) {
	var entry Entry
	err := k.db.First(&entry, "name = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("could not get %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (k *SQLiteKV) Set(key, value string) error {
	entry := Entry{Name: key, Value: value, UpdatedAt: time.Now()}
	err := k.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("could not set %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection
func (k *SQLiteKV) Close() error {
	sqlDB, err := k.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
