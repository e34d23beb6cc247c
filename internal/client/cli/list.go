package cli

import (
	"context"
	"fmt"

	"github.com/angmini/angmini-client/internal/models"
)

// RunList prints cached schedules. With no arguments the whole
// collection is printed; one argument filters by exact date, two by an
// inclusive range.
func (c *Cli) RunList(ctx context.Context, args []string) error {
	var schedules []models.Schedule
	switch len(args) {
	case 0:
		schedules = c.syncService.Schedules()
	case 1:
		schedules = c.syncService.SchedulesOn(args[0])
	case 2:
		schedules = c.syncService.SchedulesBetween(args[0], args[1])
	default:
		return fmt.Errorf("list takes at most two arguments, got %d", len(args))
	}

	if len(schedules) == 0 {
		fmt.Println("No schedules.")
		return nil
	}

	for _, s := range schedules {
		printSchedule(s)
	}
	return nil
}

func printSchedule(s models.Schedule) {
	mark := " "
	if s.Status == models.StatusDone {
		mark = "x"
	}

	span := "--:--"
	if s.StartTime != nil {
		span = *s.StartTime
		if s.EndTime != nil {
			span += "~" + *s.EndTime
		}
	}

	line := fmt.Sprintf("[%s] #%d %s %s %s (%s)", mark, s.ID, s.Date, span, s.Title, s.Category)
	if s.Location != "" {
		line += " @ " + s.Location
	}
	fmt.Println(line)
}
