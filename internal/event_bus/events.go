package event_bus

import "time"

const (
	SchedulePeriodStatusChangedEvent EventType = "schedule_period.status_changed"
	ScheduleEventsGeneratedEvent     EventType = "schedule_event.generated"
)

// SchedulePeriodStatusChanged is published whenever a roster period moves
// through its lifecycle (draft, collecting, scheduling, published, closed).
type SchedulePeriodStatusChanged struct {
	PeriodId          int
	MinistryId        int
	Month             int
	Year              int
	From              string
	To                string
	AvailabilityToken string
	Deadline          *time.Time
}

// ScheduleEventsGenerated is published after the fixed-event generator ran for a period.
type ScheduleEventsGenerated struct {
	PeriodId int
	Created  int
}
