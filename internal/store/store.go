// Package store provides bbolt-backed persistence for the ledger. Each entity
// lives in its own bucket as a JSON value keyed by a bucket-local sequence id.
// Transactions are stored as whole aggregates (transaction plus splits in one
// value), so every write to an aggregate is all-or-nothing.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// Bucket names, one per ledger entity.
const (
	BucketCommodities  = "commodities"
	BucketAccounts     = "accounts"
	BucketTransactions = "transactions"
	BucketPrices       = "prices"
)

// Store wraps the bbolt database holding the ledger.
type Store struct {
	db *bolt.DB
}

// New opens (or creates) the ledger database at dbPath and ensures every
// entity bucket exists.
func New(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{BucketCommodities, BucketAccounts, BucketTransactions, BucketPrices} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("create bucket %q: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NextID draws the next sequence id from a bucket. Sequence ids are never
// reused, so deleted records leave gaps.
func (s *Store) NextID(bucketName string) (int64, error) {
	var id int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("unknown bucket %q", bucketName)
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		id = int64(seq)
		return nil
	})
	return id, err
}

// Put stores value under key in the named bucket, JSON-encoded.
func (s *Store) Put(bucketName string, key int64, value interface{}) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return putJSON(tx, bucketName, key, value)
	})
}

// Get loads the record under key in the named bucket into value. Returns
// ErrNotFound when the key has no record.
func (s *Store) Get(bucketName string, key int64, value interface{}) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("unknown bucket %q", bucketName)
		}

		data := b.Get(itob(key))
		if data == nil {
			return ErrNotFound
		}

		return json.Unmarshal(data, value)
	})
}

// Delete removes the record under key in the named bucket. Deleting an absent
// key is a no-op.
func (s *Store) Delete(bucketName string, key int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("unknown bucket %q", bucketName)
		}

		return b.Delete(itob(key))
	})
}

// List scans the named bucket and returns the raw values passing filter, or
// every value when filter is nil.
func (s *Store) List(bucketName string, filter func(data []byte) bool) ([][]byte, error) {
	var results [][]byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("unknown bucket %q", bucketName)
		}

		return b.ForEach(func(k, v []byte) error {
			if filter == nil || filter(v) {
				// v is only valid inside the view transaction.
				copied := make([]byte, len(v))
				copy(copied, v)
				results = append(results, copied)
			}
			return nil
		})
	})

	return results, err
}

// putJSON writes one record inside an already-open update transaction, so
// multi-record writes (whole-subtree renames) commit atomically.
func putJSON(tx *bolt.Tx, bucketName string, key int64, value interface{}) error {
	b := tx.Bucket([]byte(bucketName))
	if b == nil {
		return fmt.Errorf("unknown bucket %q", bucketName)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", bucketName, err)
	}

	return b.Put(itob(key), data)
}

// itob encodes an id as a big-endian key so bucket iteration runs in id order.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
