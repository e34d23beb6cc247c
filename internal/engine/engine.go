// Package engine maintains the authoritative in-memory schedule
// collection and applies decoded sync events to it with deterministic,
// idempotent semantics. The engine performs no I/O and never suspends:
// once invoked it runs to completion, which is what keeps event
// application safe to interleave with transport and storage calls.
package engine

import (
	"log/slog"

	"github.com/angmini/angmini-client/internal/models"
)

// Engine applies sync events to schedule collections. It holds no
// collection state itself; the caller owns the slice.
type Engine struct {
	logger *slog.Logger
}

// New creates an engine that logs reconciliation no-ops at debug level.
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Apply returns the collection that results from applying one event.
// The input slice is never mutated. Applying the same event twice in
// succession yields the same collection as applying it once.
//
// Two distinct merge policies coexist on purpose:
//   - full_sync is destructive: the collection becomes exactly the
//     event's schedule list, dropping anything absent from it.
//   - batch_merge (the legacy bulk payload) is additive: incoming
//     schedules replace same-ID entries or append, and everything else
//     is preserved.
//
// The remote producer relies on the distinction; do not unify them.
func (e *Engine) Apply(collection []models.Schedule, ev models.SyncEvent) []models.Schedule {
	switch ev.Action {
	case models.ActionFullSync:
		out := make([]models.Schedule, len(ev.Schedules))
		copy(out, ev.Schedules)
		return out

	case models.ActionBatchMerge:
		return MergeBatch(collection, ev.Schedules)

	case models.ActionAdd:
		// An add for an existing ID is an upsert, not an error: the
		// assistant may redeliver an add after a retry.
		return upsert(collection, *ev.Schedule)

	case models.ActionUpdate:
		replaced := false
		out := make([]models.Schedule, len(collection))
		for i, s := range collection {
			if s.ID == ev.Schedule.ID {
				out[i] = *ev.Schedule
				replaced = true
			} else {
				out[i] = s
			}
		}
		if !replaced {
			// Never synthesize a schedule from an update; the partial
			// payload may be missing fields the add carried.
			e.logger.Debug("update for unknown schedule ignored", "id", ev.Schedule.ID)
		}
		return out

	case models.ActionDelete:
		out := make([]models.Schedule, 0, len(collection))
		for _, s := range collection {
			if s.ID != ev.Schedule.ID {
				out = append(out, s)
			}
		}
		if len(out) == len(collection) {
			e.logger.Debug("delete for unknown schedule ignored", "id", ev.Schedule.ID)
		}
		return out

	default:
		e.logger.Warn("unknown sync action ignored", "action", ev.Action)
		return collection
	}
}

// MergeBatch merges incoming schedules into the collection additively:
// replace by ID when present, append otherwise, preserve everything the
// batch does not mention.
func MergeBatch(collection, incoming []models.Schedule) []models.Schedule {
	out := make([]models.Schedule, len(collection))
	copy(out, collection)
	for _, in := range incoming {
		out = upsert(out, in)
	}
	return out
}

func upsert(collection []models.Schedule, in models.Schedule) []models.Schedule {
	out := make([]models.Schedule, len(collection))
	replaced := false
	for i, s := range collection {
		if s.ID == in.ID {
			out[i] = in
			replaced = true
		} else {
			out[i] = s
		}
	}
	if !replaced {
		out = append(out, in)
	}
	return out
}
