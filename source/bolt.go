package source

import (
	"context"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/krisalay/remote-cache/types"
)

// Bolt resolves keys from one bbolt bucket. It is safe for concurrent use;
// bbolt serializes writers and lets readers run in parallel.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
}

var _ types.Resolver[string, []byte] = (*Bolt)(nil)

// OpenBolt opens or creates the database at path and makes sure bucket exists.
func OpenBolt(path, bucket string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt %s", path)
	}
	if bucket == "" {
		bucket = "cache"
	}
	b := []byte(bucket)
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(b)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "create bucket %s", bucket)
	}
	return &Bolt{db: db, bucket: b}, nil
}

// Close closes the underlying database.
func (s *Bolt) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put writes value under key.
func (s *Bolt) Put(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
}

// Delete removes key from the bucket.
func (s *Bolt) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Resolve returns a copy of the stored value, or nil when the bucket has no
// such key. Only storage failures are errors.
func (s *Bolt) Resolve(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		// v is only valid inside the transaction. An empty value stays non-nil.
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	return out, err
}
