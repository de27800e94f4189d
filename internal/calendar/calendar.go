// Package calendar maps the engine's abstract week indices to concrete
// calendar dates, for display in exported schedules only. The engine
// itself is calendar-agnostic (§6: team names, and likewise real dates,
// are out of the engine's purview).
package calendar

import (
	"fmt"
	"time"
)

// WeekDates returns one representative date per week, starting at
// seasonStart and advancing by 7 days per week, for totalWeeks weeks.
func WeekDates(seasonStart time.Time, totalWeeks int) []time.Time {
	dates := make([]time.Time, totalWeeks)
	d := seasonStart
	for w := 0; w < totalWeeks; w++ {
		dates[w] = d
		d = d.AddDate(0, 0, 7)
	}
	return dates
}

// SlotLabel renders a slot index as a short display label ("Slot 1").
func SlotLabel(slot int) string {
	return fmt.Sprintf("Slot %d", slot)
}
