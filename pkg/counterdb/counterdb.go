// Package counterdb persists the article number continuation counter in a
// bbolt bucket, so consecutive runs hand out non-overlapping blocks.
package counterdb

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketName = []byte("article_numbers")
	nextKey    = []byte("next")
)

type Store struct {
	db   *bolt.DB
	base int
}

// Open creates or opens the counter database. base seeds the counter when
// the bucket holds no value yet.
func Open(path string, base int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for counter db: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open counter db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create counter bucket: %w", err)
	}

	return &Store{db: db, base: base}, nil
}

// Reserve claims count sequential values inside one transaction and returns
// the first. Two calls never hand out the same number.
func (s *Store) Reserve(count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("count must be positive, got %d", count)
	}

	var start int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		start = s.base
		if v := b.Get(nextKey); v != nil {
			start = int(binary.BigEndian.Uint64(v))
		}

		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(start+count))
		return b.Put(nextKey, buf)
	})
	if err != nil {
		return 0, err
	}
	return start, nil
}

// Next returns the value the next reservation would start at, without
// claiming it.
func (s *Store) Next() (int, error) {
	next := s.base
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(nextKey); v != nil {
			next = int(binary.BigEndian.Uint64(v))
		}
		return nil
	})
	return next, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
