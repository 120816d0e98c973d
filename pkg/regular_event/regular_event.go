package regular_event

import (
	"fmt"
	"time"
)

// RegularEvent is a recurring calendar template, not a dated instance.
// DayOfWeek follows time.Weekday (0 = Sunday). WeekOfMonth restricts the
// template to the Nth occurrence of that weekday in a month; nil means
// every occurrence. A template can serve several ministries at once.
type RegularEvent struct {
	Id        int
	Title     string
	DayOfWeek time.Weekday
	// EventTime is the start time in "HH:MM" 24h notation.
	EventTime   string
	WeekOfMonth *int
	MinistryIds []int
	IsActive    bool
}

// Validate checks the template fields against their allowed ranges.
func (e RegularEvent) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("title is required")
	}
	if e.DayOfWeek < time.Sunday || e.DayOfWeek > time.Saturday {
		return fmt.Errorf("day of week must be between 0 and 6")
	}
	if _, err := time.Parse("15:04", e.EventTime); err != nil {
		return fmt.Errorf("event time must be in HH:MM format: %w", err)
	}
	if e.WeekOfMonth != nil && (*e.WeekOfMonth < 1 || *e.WeekOfMonth > 5) {
		return fmt.Errorf("week of month must be between 1 and 5")
	}
	return nil
}
