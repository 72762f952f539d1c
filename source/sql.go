package source

import (
	"context"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/krisalay/remote-cache/types"
)

// Record is one row of the key/value table the SQL resolver reads.
type Record struct {
	Key       string `gorm:"column:cache_key;primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// SQL resolves keys from a gorm-managed table of Records.
type SQL struct {
	db *gorm.DB
}

var _ types.Resolver[string, *string] = (*SQL)(nil)

// OpenSQLite opens (or creates) a pure-Go SQLite database at path and
// migrates the Record table.
func OpenSQLite(path string) (*SQL, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	return NewSQL(db)
}

// NewSQL wraps an existing connection and migrates the Record table.
func NewSQL(db *gorm.DB) (*SQL, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, errors.Wrap(err, "migrate records")
	}
	return &SQL{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Put inserts or updates the row for key.
func (s *SQL) Put(ctx context.Context, key, value string) error {
	rec := Record{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
}

// PutAll upserts recs in batches.
func (s *SQL) PutAll(ctx context.Context, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(recs, 500).Error
}

// Delete removes the row for key.
func (s *SQL) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Record{}, "cache_key = ?", key).Error
}

// Resolve returns the stored value. A key with no row resolves to nil with no
// error, so the cache keeps the miss like any other value.
func (s *SQL) Resolve(ctx context.Context, key string) (*string, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "cache_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", key)
	}
	return &rec.Value, nil
}
