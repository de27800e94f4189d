package calendar

import (
	"testing"
	"time"
)

func TestWeekDatesAdvancesByWeek(t *testing.T) {
	start := time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC)
	dates := WeekDates(start, 4)
	if len(dates) != 4 {
		t.Fatalf("expected 4 dates, got %d", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) != 7*24*time.Hour {
			t.Errorf("week %d: expected 7 days after week %d, got %v", i, i-1, dates[i].Sub(dates[i-1]))
		}
	}
	if !dates[0].Equal(start) {
		t.Errorf("expected first week to equal season start, got %v", dates[0])
	}
}

func TestSlotLabel(t *testing.T) {
	if got := SlotLabel(3); got != "Slot 3" {
		t.Errorf("expected %q, got %q", "Slot 3", got)
	}
}
