// Package boltdb implements the client cache on a local bbolt file.
package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/angmini/angmini-client/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketMessages  = []byte("messages")
	bucketSchedules = []byte("schedules")
	bucketMetadata  = []byte("metadata")

	allBuckets = [][]byte{bucketMessages, bucketSchedules, bucketMetadata}
)

// Storage is the bbolt-backed implementation of storage.CacheStorage.
type Storage struct {
	db        *bbolt.DB
	retention int
}

// New opens (or creates) the cache file at dbPath, creates the buckets,
// and runs the version migration: a stored cache_version that does not
// match storage.CurrentCacheVersion wipes every bucket before the
// current marker is written. retention bounds the persisted message log;
// values <= 0 fall back to storage.DefaultMessageRetention.
func New(ctx context.Context, dbPath string, retention int) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	if retention <= 0 {
		retention = storage.DefaultMessageRetention
	}

	s := &Storage{db: db, retention: retention}

	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cache: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// ClearAll drops every kind at once. The version marker is rewritten so
// the next open does not mistake the empty cache for an old one.
func (s *Storage) ClearAll(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := wipeBuckets(tx); err != nil {
			return err
		}
		return putCacheVersion(tx, storage.CurrentCacheVersion)
	})
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// initBuckets creates the required buckets if they do not exist.
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", b, err)
			}
		}
		return nil
	})
}

// migrate compares the stored cache version with the current one. On any
// mismatch the whole cache is wiped and the current marker written; a
// partially migrated cache is worse than an empty one.
func (s *Storage) migrate() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		version := getCacheVersion(tx)
		if version == storage.CurrentCacheVersion {
			return nil
		}
		if err := wipeBuckets(tx); err != nil {
			return err
		}
		return putCacheVersion(tx, storage.CurrentCacheVersion)
	})
}

// wipeBuckets deletes and recreates every bucket inside tx.
func wipeBuckets(tx *bbolt.Tx) error {
	for _, b := range allBuckets {
		if err := tx.DeleteBucket(b); err != nil && err != bbolt.ErrBucketNotFound {
			return fmt.Errorf("failed to delete %s bucket: %w", b, err)
		}
		if _, err := tx.CreateBucket(b); err != nil {
			return fmt.Errorf("failed to recreate %s bucket: %w", b, err)
		}
	}
	return nil
}
