package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/angmini/angmini-client/internal/client/storage"
	"github.com/angmini/angmini-client/internal/models"
)

const keyScheduleSet = "all"

// SaveSchedules replaces the persisted schedule collection. Unlike the
// message log the collection is unbounded; the working set of a personal
// calendar stays small.
func (s *Storage) SaveSchedules(ctx context.Context, schedules []models.Schedule) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	raw, err := json.Marshal(schedules)
	if err != nil {
		return fmt.Errorf("failed to marshal schedules: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSchedules)
		if bucket == nil {
			return fmt.Errorf("schedules bucket not found")
		}
		return bucket.Put([]byte(keyScheduleSet), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to save schedules: %w", err)
	}
	return nil
}

// GetSchedules returns the persisted collection. Missing or corrupt data
// degrades to an empty collection.
func (s *Storage) GetSchedules(ctx context.Context) ([]models.Schedule, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	schedules := []models.Schedule{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSchedules)
		if bucket == nil {
			return fmt.Errorf("schedules bucket not found")
		}
		raw := bucket.Get([]byte(keyScheduleSet))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &schedules); err != nil {
			schedules = []models.Schedule{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}
	return schedules, nil
}

// ClearSchedules drops the schedule collection.
func (s *Storage) ClearSchedules(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSchedules)
		if bucket == nil {
			return fmt.Errorf("schedules bucket not found")
		}
		return bucket.Delete([]byte(keyScheduleSet))
	})
	if err != nil {
		return fmt.Errorf("failed to clear schedules: %w", err)
	}
	return nil
}
