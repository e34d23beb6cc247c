package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/angmini/angmini-client/internal/client/storage"
	"github.com/angmini/angmini-client/internal/models"
)

const keyMessageLog = "log"

// SaveMessages replaces the persisted conversation log. The log is
// truncated to the newest retention-limit records before writing so the
// cache file stays bounded no matter how long the session runs.
func (s *Storage) SaveMessages(ctx context.Context, messages []models.ChatMessage) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	if len(messages) > s.retention {
		messages = messages[len(messages)-s.retention:]
	}

	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMessages)
		if bucket == nil {
			return fmt.Errorf("messages bucket not found")
		}
		return bucket.Put([]byte(keyMessageLog), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to save messages: %w", err)
	}
	return nil
}

// GetMessages returns the persisted log, oldest first. Missing or
// corrupt data degrades to an empty log.
func (s *Storage) GetMessages(ctx context.Context) ([]models.ChatMessage, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	messages := []models.ChatMessage{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMessages)
		if bucket == nil {
			return fmt.Errorf("messages bucket not found")
		}
		raw := bucket.Get([]byte(keyMessageLog))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &messages); err != nil {
			// Corrupt log: reset to empty rather than failing the load.
			messages = []models.ChatMessage{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}

// ClearMessages drops the conversation log.
func (s *Storage) ClearMessages(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMessages)
		if bucket == nil {
			return fmt.Errorf("messages bucket not found")
		}
		return bucket.Delete([]byte(keyMessageLog))
	})
	if err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}
