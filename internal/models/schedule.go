package models

import (
	"github.com/angmini/angmini-client/pkg/protocol"
)

// Category is the major classification of a schedule. The set is closed
// and mirrors the assistant's vocabulary; anything outside it degrades to
// CategoryOther rather than rejecting the record, because the assistant's
// vocabulary can evolve independently of this client.
type Category string

const (
	CategoryStudy       Category = "학업"
	CategoryAppointment Category = "약속"
	CategoryPersonal    Category = "개인"
	CategoryWork        Category = "업무"
	CategoryRoutine     Category = "루틴"
	CategoryOther       Category = "기타"
)

// Status is the completion state of a schedule.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Schedule represents one calendar item or task. ID is the merge key and
// is assigned by the assistant's database. StartTime and EndTime are nil
// for all-day items; a nil start time must stay nil through every sync
// path so the time grid can exclude the item.
type Schedule struct {
	StartTime *string  `json:"startTime"` // HH:MM
	EndTime   *string  `json:"endTime"`   // HH:MM
	Title     string   `json:"title"`
	Date      string   `json:"date"` // YYYY-MM-DD
	Location  string   `json:"location"`
	Note      string   `json:"note"`
	Category  Category `json:"category"`
	Status    Status   `json:"status"`
	ID        int64    `json:"id"`
}

// ParseCategory maps a wire category onto the closed set, defaulting to
// CategoryOther for anything unrecognized.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryStudy, CategoryAppointment, CategoryPersonal,
		CategoryWork, CategoryRoutine, CategoryOther:
		return Category(s)
	default:
		return CategoryOther
	}
}

// ParseStatus maps a wire status onto the two-value set. The assistant
// emits 대기 or 예정 for pending items and 완료 for completed ones;
// anything unrecognized defaults to pending.
func ParseStatus(s string) Status {
	switch s {
	case "완료", string(StatusDone):
		return StatusDone
	case "대기", "예정", string(StatusPending):
		return StatusPending
	default:
		return StatusPending
	}
}

// ScheduleFromWire normalizes the assistant's snake_case representation
// into the internal model. A malformed category or status falls back to
// its default without dropping the rest of the record.
func ScheduleFromWire(w protocol.Schedule) Schedule {
	return Schedule{
		ID:        w.ID,
		Title:     w.Title,
		Date:      w.Date,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Location:  w.Location,
		Note:      w.Memo,
		Category:  ParseCategory(w.Category),
		Status:    ParseStatus(w.Status),
	}
}

// SchedulesFromWire normalizes a wire schedule list, preserving order.
func SchedulesFromWire(ws []protocol.Schedule) []Schedule {
	schedules := make([]Schedule, 0, len(ws))
	for _, w := range ws {
		schedules = append(schedules, ScheduleFromWire(w))
	}
	return schedules
}

// ScheduleToWire converts an internal schedule back to the wire
// representation, using the assistant's status vocabulary.
func ScheduleToWire(s Schedule) protocol.Schedule {
	status := "대기"
	if s.Status == StatusDone {
		status = "완료"
	}
	return protocol.Schedule{
		ID:        s.ID,
		Title:     s.Title,
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Location:  s.Location,
		Memo:      s.Note,
		Category:  string(s.Category),
		Status:    status,
	}
}
