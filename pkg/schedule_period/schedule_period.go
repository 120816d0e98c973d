package schedule_period

import (
	"fmt"
	"time"
)

// SchedulePeriod is one month of scheduling for a ministry. The availability
// token is an unguessable credential that lets servants open the period's
// availability form without an account; it must never be logged.
type SchedulePeriod struct {
	Id                   int
	MinistryId           int
	Month                int
	Year                 int
	Status               Status
	StartDate            time.Time
	EndDate              time.Time
	AvailabilityDeadline *time.Time
	AvailabilityToken    string
	Notes                string
	PublishedAt          *time.Time
}

func (p SchedulePeriod) Validate() error {
	if p.MinistryId == 0 {
		return fmt.Errorf("ministry is required")
	}
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	if p.Year < 2000 || p.Year > 2200 {
		return fmt.Errorf("year %d is out of range", p.Year)
	}
	return nil
}

// MonthBounds returns the first and last day of the period's month.
func (p SchedulePeriod) MonthBounds() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}
