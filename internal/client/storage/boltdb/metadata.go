package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/angmini/angmini-client/internal/client/storage"
)

const (
	keyCacheVersion = "cache_version"
	keyLastSync     = "last_sync"
)

// SaveLastSync records when the schedule collection last changed from a
// sync, stored as RFC3339 text.
func (s *Storage) SaveLastSync(ctx context.Context, ts time.Time) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}
		return bucket.Put([]byte(keyLastSync), []byte(ts.Format(time.RFC3339)))
	})
	if err != nil {
		return fmt.Errorf("failed to save last sync: %w", err)
	}
	return nil
}

// GetLastSync returns the recorded last-sync timestamp. A missing or
// unreadable value degrades to the zero time, never an error the caller
// must branch on.
func (s *Storage) GetLastSync(ctx context.Context) (time.Time, error) {
	if s.db == nil {
		return time.Time{}, storage.ErrStorageClosed
	}

	var ts time.Time
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}
		raw := bucket.Get([]byte(keyLastSync))
		if raw == nil {
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, string(raw))
		if err != nil {
			// Corrupt value: treat as never synced.
			return nil
		}
		ts = parsed
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last sync: %w", err)
	}
	return ts, nil
}

// getCacheVersion reads the stored schema version inside tx, returning 0
// when no marker has been written yet.
func getCacheVersion(tx *bbolt.Tx) int {
	bucket := tx.Bucket(bucketMetadata)
	if bucket == nil {
		return 0
	}
	raw := bucket.Get([]byte(keyCacheVersion))
	if len(raw) != 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(raw))
}

// putCacheVersion writes the schema version marker inside tx.
func putCacheVersion(tx *bbolt.Tx, version int) error {
	bucket := tx.Bucket(bucketMetadata)
	if bucket == nil {
		return fmt.Errorf("metadata bucket not found")
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(version))
	if err := bucket.Put([]byte(keyCacheVersion), raw); err != nil {
		return fmt.Errorf("failed to save cache version: %w", err)
	}
	return nil
}
