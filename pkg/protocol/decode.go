package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Decode errors. The producer is an LLM, so every decode failure is
// expected to be swallowed and logged by the caller, never surfaced.
var (
	// ErrUnknownAction indicates an action value outside the protocol.
	ErrUnknownAction = errors.New("unknown sync action")

	// ErrMissingSchedule indicates an add/update/delete event without its
	// single-schedule payload.
	ErrMissingSchedule = errors.New("sync event missing schedule payload")

	// ErrMissingSchedules indicates a full_sync event without the
	// replacement schedule list.
	ErrMissingSchedules = errors.New("full_sync event missing schedules payload")

	// ErrIncompleteSchedule indicates a schedule payload missing fields
	// required by the event's action.
	ErrIncompleteSchedule = errors.New("schedule payload missing required fields")
)

// DecodeSyncEvent parses a [SCHEDULE_SYNC] payload and validates that the
// fields required by its action are present. A rejected event decodes to
// an error and nothing else; partial application is never possible.
func DecodeSyncEvent(payload []byte) (*SyncEvent, error) {
	var ev SyncEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("parsing sync event: %w", err)
	}

	switch ev.Action {
	case ActionAdd, ActionUpdate:
		if ev.Schedule == nil {
			return nil, ErrMissingSchedule
		}
		if ev.Schedule.ID == 0 || ev.Schedule.Title == "" || ev.Schedule.Date == "" {
			return nil, ErrIncompleteSchedule
		}
	case ActionDelete:
		// Only the identifier is required for a delete.
		if ev.Schedule == nil {
			return nil, ErrMissingSchedule
		}
		if ev.Schedule.ID == 0 {
			return nil, ErrIncompleteSchedule
		}
	case ActionFullSync:
		if ev.Schedules == nil {
			return nil, ErrMissingSchedules
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}

	return &ev, nil
}

// DecodeScheduleList parses the legacy [SCHEDULE_DATA] payload: a bare
// JSON array of schedules.
func DecodeScheduleList(payload []byte) ([]Schedule, error) {
	var schedules []Schedule
	if err := json.Unmarshal(payload, &schedules); err != nil {
		return nil, fmt.Errorf("parsing schedule list: %w", err)
	}
	return schedules, nil
}
