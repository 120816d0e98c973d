package schedule_event

import (
	"time"

	"github.com/ekklesia/ekklesia/pkg/regular_event"
)

// BuildFixedEvents expands recurring templates into dated events for the
// inclusive range [start, end]. When the ministry has no templates of its
// own, the church's default weekly schedule is used instead.
//
// A template matches a date when the weekday is equal and, if the template
// is pinned to a week of month, when the date is the Nth occurrence of that
// weekday in its month (1 = first occurrence).
func BuildFixedEvents(periodId int, start, end time.Time, templates []regular_event.RegularEvent) []ScheduleEvent {
	if len(templates) == 0 {
		return defaultFixedEvents(periodId, start, end)
	}

	var events []ScheduleEvent
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		occurrence := weekdayOccurrence(date)
		for _, tpl := range templates {
			if tpl.DayOfWeek != date.Weekday() {
				continue
			}
			if tpl.WeekOfMonth != nil && *tpl.WeekOfMonth != occurrence {
				continue
			}
			events = append(events, ScheduleEvent{
				PeriodId:  periodId,
				Title:     tpl.Title,
				EventDate: date,
				EventTime: tpl.EventTime,
				EventType: TypeRegular,
				Source:    SourceRegularCalendar,
			})
		}
	}
	return events
}

// defaultFixedEvents produces the church's standing weekly schedule:
// Sunday services at 10:00 and 18:00, a Wednesday prayer service at 19:00
// outside the first seven days of the month, and a fasting service on every
// weekday at 19:30 during days 1-7. The "first week" is calendar days 1-7,
// not the first Monday-to-Sunday span.
func defaultFixedEvents(periodId int, start, end time.Time) []ScheduleEvent {
	var events []ScheduleEvent
	add := func(date time.Time, eventTime, title string) {
		events = append(events, ScheduleEvent{
			PeriodId:  periodId,
			Title:     title,
			EventDate: date,
			EventTime: eventTime,
			EventType: TypeRegular,
			Source:    SourceRegularCalendar,
		})
	}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		firstWeek := date.Day() <= 7
		switch date.Weekday() {
		case time.Sunday:
			add(date, "10:00", "Sunday morning service")
			add(date, "18:00", "Sunday evening service")
		case time.Saturday:
			// no default service
		default:
			if firstWeek {
				add(date, "19:30", "Fasting and prayer service")
			}
			if date.Weekday() == time.Wednesday && !firstWeek {
				add(date, "19:00", "Prayer service")
			}
		}
	}
	return events
}

// weekdayOccurrence returns which occurrence of its weekday the date is
// within its month: 1 for days 1-7, 2 for days 8-14, and so on.
func weekdayOccurrence(date time.Time) int {
	return (date.Day()-1)/7 + 1
}
