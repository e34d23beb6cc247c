package engine

import "github.com/angmini/angmini-client/internal/models"

// Derived views are pure O(n) functions over the current collection.
// They recompute on every call; nothing is memoized, so a view can never
// go stale across mutations.

// On returns the schedules falling on the exact date (YYYY-MM-DD).
func On(collection []models.Schedule, date string) []models.Schedule {
	var out []models.Schedule
	for _, s := range collection {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// Between returns the schedules with from <= date <= to, both ends
// inclusive. ISO dates compare correctly as strings.
func Between(collection []models.Schedule, from, to string) []models.Schedule {
	var out []models.Schedule
	for _, s := range collection {
		if s.Date >= from && s.Date <= to {
			out = append(out, s)
		}
	}
	return out
}

// Dates returns the set of dates that have at least one schedule.
func Dates(collection []models.Schedule) map[string]bool {
	out := make(map[string]bool, len(collection))
	for _, s := range collection {
		out[s.Date] = true
	}
	return out
}
