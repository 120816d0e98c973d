package schedule_event

import (
	"fmt"
	"time"
)

type EventType string

const (
	TypeRegular  EventType = "regular"
	TypeSpecial  EventType = "special"
	TypeImported EventType = "imported"
)

type Source string

const (
	SourceManual          Source = "manual"
	SourceRegularCalendar Source = "regular_calendar"
	SourceBookingSystem   Source = "booking_system"
)

// ScheduleEvent is one dated, timed occurrence inside a schedule period.
// ExternalId carries the booking id for imported events and is used to
// deduplicate repeated imports.
type ScheduleEvent struct {
	Id        int
	PeriodId  int
	Title     string
	EventDate time.Time
	// EventTime is the start time in "HH:MM" 24h notation.
	EventTime  string
	EventType  EventType
	Source     Source
	ExternalId *string
}

func (e ScheduleEvent) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if e.EventDate.IsZero() {
		return fmt.Errorf("event date is required")
	}
	if _, err := time.Parse("15:04", e.EventTime); err != nil {
		return fmt.Errorf("event time must be in HH:MM format: %w", err)
	}
	switch e.EventType {
	case TypeRegular, TypeSpecial, TypeImported:
	default:
		return fmt.Errorf("unknown event type: %s", e.EventType)
	}
	switch e.Source {
	case SourceManual, SourceRegularCalendar, SourceBookingSystem:
	default:
		return fmt.Errorf("unknown event source: %s", e.Source)
	}
	return nil
}

// Key identifies an event within a period for deduplication purposes.
type Key struct {
	Date  string
	Time  string
	Title string
}

func (e ScheduleEvent) Key() Key {
	return Key{Date: e.EventDate.Format(time.DateOnly), Time: e.EventTime, Title: e.Title}
}
