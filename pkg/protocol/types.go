package protocol

// Action values carried by the SyncEvent discriminator.
const (
	ActionAdd      = "add"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionFullSync = "full_sync"
)

// Schedule is the wire representation of a single calendar item as the
// assistant emits it: snake_case field names, string enums, nullable
// times. Field names must match the assistant's serializer exactly.
type Schedule struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Title     string  `json:"title"`
	Date      string  `json:"date"`
	Location  string  `json:"location"`
	Memo      string  `json:"memo"`
	Category  string  `json:"category"`
	Status    string  `json:"status"`
	ID        int64   `json:"id"`
}

// SyncEvent is the wire representation of one sync instruction.
// Which payload field is required depends on the action:
// add/update/delete carry Schedule, full_sync carries Schedules.
type SyncEvent struct {
	Schedule      *Schedule  `json:"schedule,omitempty"`
	Action        string     `json:"action"`
	SyncTimestamp string     `json:"sync_timestamp,omitempty"`
	Schedules     []Schedule `json:"schedules,omitempty"`
}
