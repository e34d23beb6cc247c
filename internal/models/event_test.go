package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angmini/angmini-client/pkg/protocol"
)

func TestEventFromWire_Add(t *testing.T) {
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)
	wire := &protocol.SyncEvent{
		Action:        protocol.ActionAdd,
		Schedule:      &protocol.Schedule{ID: 7, Title: "Dentist", Date: "2025-12-01", Category: "개인", Status: "대기"},
		SyncTimestamp: "2025-11-27T10:00:00Z",
	}

	ev := EventFromWire(wire, now)
	assert.Equal(t, ActionAdd, ev.Action)
	require.NotNil(t, ev.Schedule)
	assert.Equal(t, int64(7), ev.Schedule.ID)
	assert.Equal(t, time.Date(2025, 11, 27, 10, 0, 0, 0, time.UTC), ev.SyncedAt)
	assert.Nil(t, ev.Schedules)
}

func TestEventFromWire_TimestampDefaults(t *testing.T) {
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "missing defaults to now", raw: "", want: now},
		{name: "garbage defaults to now", raw: "yesterday-ish", want: now},
		{
			// The assistant's serializer emits naive isoformat.
			name: "naive isoformat accepted",
			raw:  "2025-11-27T10:00:00",
			want: time.Date(2025, 11, 27, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := &protocol.SyncEvent{
				Action:        protocol.ActionDelete,
				Schedule:      &protocol.Schedule{ID: 1},
				SyncTimestamp: tt.raw,
			}
			ev := EventFromWire(wire, now)
			assert.True(t, tt.want.Equal(ev.SyncedAt), "got %v", ev.SyncedAt)
		})
	}
}

func TestEventFromWire_FullSync(t *testing.T) {
	wire := &protocol.SyncEvent{
		Action: protocol.ActionFullSync,
		Schedules: []protocol.Schedule{
			{ID: 1, Title: "a", Date: "2025-01-01", Category: "업무", Status: "예정"},
			{ID: 2, Title: "b", Date: "2025-01-02", Category: "기타", Status: "완료"},
		},
	}

	ev := EventFromWire(wire, time.Now())
	assert.Equal(t, ActionFullSync, ev.Action)
	require.Len(t, ev.Schedules, 2)
	assert.Equal(t, StatusDone, ev.Schedules[1].Status)
}

func TestBatchMergeEvent(t *testing.T) {
	now := time.Now()
	ev := BatchMergeEvent([]protocol.Schedule{{ID: 4, Title: "x", Date: "2025-02-02"}}, now)
	assert.Equal(t, ActionBatchMerge, ev.Action)
	require.Len(t, ev.Schedules, 1)
	assert.Equal(t, now, ev.SyncedAt)
}
