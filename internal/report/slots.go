package report

import (
	"fmt"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

// Slot is one patrol window of the day.
type Slot struct {
	StartHour int
	Hours     int
}

func (s Slot) Label() string {
	return fmt.Sprintf("%02d:00", s.StartHour)
}

// Covers reports whether hour falls inside [StartHour, StartHour+Hours), wrapping at midnight.
func (s Slot) Covers(hour int) bool {
	return (hour-s.StartHour+24)%24 < s.Hours
}

// Slots expands a schedule into floor(24/interval) slots starting at StartHour and
// wrapping past midnight. An interval below 1 is treated as 1.
func Slots(schedule domain.CoverageSchedule) []Slot {
	interval := schedule.IntervalHours
	if interval < 1 {
		interval = 1
	}
	if interval > 24 {
		interval = 24
	}
	start := ((schedule.StartHour % 24) + 24) % 24

	n := 24 / interval
	slots := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, Slot{StartHour: (start + i*interval) % 24, Hours: interval})
	}
	return slots
}
