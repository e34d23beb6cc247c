package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angmini/angmini-client/internal/models"
)

func calendar() []models.Schedule {
	return []models.Schedule{
		sched(1, "standup", "2025-11-03"),
		sched(2, "dentist", "2025-11-03"),
		sched(3, "trip", "2025-11-10"),
		sched(4, "review", "2025-12-01"),
	}
}

func TestOn(t *testing.T) {
	c := calendar()

	got := On(c, "2025-11-03")
	assert.Len(t, got, 2)

	assert.Empty(t, On(c, "2025-11-04"))
	assert.Empty(t, On(nil, "2025-11-03"))
}

func TestBetween(t *testing.T) {
	c := calendar()

	got := Between(c, "2025-11-03", "2025-11-10")
	assert.Len(t, got, 3)

	// Both ends inclusive.
	got = Between(c, "2025-11-10", "2025-11-10")
	assert.Len(t, got, 1)
	assert.Equal(t, "trip", got[0].Title)

	assert.Empty(t, Between(c, "2025-11-04", "2025-11-09"))
}

func TestDates(t *testing.T) {
	got := Dates(calendar())
	assert.Equal(t, map[string]bool{
		"2025-11-03": true,
		"2025-11-10": true,
		"2025-12-01": true,
	}, got)

	assert.Empty(t, Dates(nil))
}
