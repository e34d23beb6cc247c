package models

import (
	"time"

	"github.com/angmini/angmini-client/pkg/protocol"
)

// Action identifies what a sync event does to the schedule collection.
type Action string

const (
	ActionAdd      Action = "add"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionFullSync Action = "full_sync"

	// ActionBatchMerge is the internal variant for the legacy bulk
	// [SCHEDULE_DATA] payload. Unlike full_sync it merges additively:
	// existing schedules absent from the batch are preserved. The two
	// policies encode different producer intents from two protocol
	// generations and must not be unified.
	ActionBatchMerge Action = "batch_merge"
)

// SyncEvent is a decoded, validated sync instruction ready for the
// reconciliation engine. Add/Update/Delete carry Schedule; FullSync and
// BatchMerge carry Schedules.
type SyncEvent struct {
	SyncedAt  time.Time
	Schedule  *Schedule
	Schedules []Schedule
	Action    Action
}

// timestamp layouts the assistant is known to emit. The Python side uses
// datetime.isoformat(), which has no timezone suffix.
var syncTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// EventFromWire converts a validated wire event into the internal form.
// A missing or unparseable sync_timestamp defaults to now.
func EventFromWire(ev *protocol.SyncEvent, now time.Time) SyncEvent {
	out := SyncEvent{
		Action:   Action(ev.Action),
		SyncedAt: parseSyncTime(ev.SyncTimestamp, now),
	}
	if ev.Schedule != nil {
		s := ScheduleFromWire(*ev.Schedule)
		out.Schedule = &s
	}
	if ev.Action == protocol.ActionFullSync {
		out.Schedules = SchedulesFromWire(ev.Schedules)
	}
	return out
}

// BatchMergeEvent wraps a legacy bulk payload as an additive merge event.
func BatchMergeEvent(ws []protocol.Schedule, now time.Time) SyncEvent {
	return SyncEvent{
		Action:    ActionBatchMerge,
		Schedules: SchedulesFromWire(ws),
		SyncedAt:  now,
	}
}

func parseSyncTime(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	for _, layout := range syncTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return now
}
