// Package storage defines the local cache contracts for the desktop
// client: the conversation log, the schedule collection, and the
// last-sync marker, persisted across process restarts. The cache owns
// serialization and versioning only; it never interprets what the
// payloads mean.
package storage

import (
	"context"
	"time"

	"github.com/angmini/angmini-client/internal/models"
)

// CurrentCacheVersion is the schema version this build writes. A stored
// version that does not match triggers a full wipe of all kinds rather
// than a field-by-field migration: lossy, but it can never corrupt
// silently.
const CurrentCacheVersion = 1

// DefaultMessageRetention bounds the persisted conversation log. Message
// saves truncate to the newest records before writing; the schedule
// collection is unbounded because the working set is small by nature.
const DefaultMessageRetention = 200

//go:generate moq -out messages_mock.go . MessageStorage

// MessageStorage persists the conversation log.
type MessageStorage interface {
	// SaveMessages replaces the persisted log, truncated to the
	// configured retention limit (newest records win).
	SaveMessages(ctx context.Context, messages []models.ChatMessage) error

	// GetMessages returns the persisted log, oldest first. A missing or
	// unreadable log yields an empty slice, never an error the caller
	// must branch on.
	GetMessages(ctx context.Context) ([]models.ChatMessage, error)

	// ClearMessages drops the log, as if freshly installed.
	ClearMessages(ctx context.Context) error
}

//go:generate moq -out schedules_mock.go . ScheduleStorage

// ScheduleStorage persists the schedule collection.
type ScheduleStorage interface {
	// SaveSchedules replaces the persisted collection.
	SaveSchedules(ctx context.Context, schedules []models.Schedule) error

	// GetSchedules returns the persisted collection. Missing or
	// unreadable data yields an empty slice.
	GetSchedules(ctx context.Context) ([]models.Schedule, error)

	// ClearSchedules drops the collection.
	ClearSchedules(ctx context.Context) error
}

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage persists sync bookkeeping.
type MetadataStorage interface {
	// SaveLastSync records when the collection last changed from a sync.
	SaveLastSync(ctx context.Context, ts time.Time) error

	// GetLastSync returns the recorded timestamp, or the zero time when
	// no sync has happened yet.
	GetLastSync(ctx context.Context) (time.Time, error)
}

// CacheStorage is the full local cache surface.
type CacheStorage interface {
	MessageStorage
	ScheduleStorage
	MetadataStorage

	// ClearAll resets every kind at once; indistinguishable from a fresh
	// install.
	ClearAll(ctx context.Context) error

	Close() error
}
