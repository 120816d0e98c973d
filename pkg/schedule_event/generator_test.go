package schedule_event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ekklesia/ekklesia/pkg/regular_event"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestBuildFixedEvents(t *testing.T) {
	// March 2025 has five Sundays: the 2nd, 9th, 16th, 23rd and 30th.
	start := date(2025, time.March, 1)
	end := date(2025, time.March, 31)

	t.Run("should expand a weekly template once per matching weekday", func(t *testing.T) {
		// given
		templates := []regular_event.RegularEvent{
			{Title: "Sunday service", DayOfWeek: time.Sunday, EventTime: "10:00"},
		}

		// when
		events := BuildFixedEvents(1, start, end, templates)

		// then
		assert.Len(t, events, 5)
		var days []int
		for _, e := range events {
			days = append(days, e.EventDate.Day())
			assert.Equal(t, "Sunday service", e.Title)
			assert.Equal(t, "10:00", e.EventTime)
			assert.Equal(t, TypeRegular, e.EventType)
			assert.Equal(t, SourceRegularCalendar, e.Source)
		}
		assert.Equal(t, []int{2, 9, 16, 23, 30}, days)
	})

	t.Run("should pin a template to the Nth weekday of the month", func(t *testing.T) {
		// given
		first := 1
		templates := []regular_event.RegularEvent{
			{Title: "Leaders meeting", DayOfWeek: time.Wednesday, EventTime: "19:00", WeekOfMonth: &first},
		}

		// when
		events := BuildFixedEvents(1, start, end, templates)

		// then
		assert.Len(t, events, 1)
		assert.Equal(t, date(2025, time.March, 5), events[0].EventDate)
	})

	t.Run("should keep every generated event inside the period range", func(t *testing.T) {
		// given
		templates := []regular_event.RegularEvent{
			{Title: "Sunday service", DayOfWeek: time.Sunday, EventTime: "10:00"},
			{Title: "Prayer", DayOfWeek: time.Wednesday, EventTime: "19:00"},
		}
		rangeStart := date(2025, time.March, 10)
		rangeEnd := date(2025, time.March, 20)

		// when
		events := BuildFixedEvents(1, rangeStart, rangeEnd, templates)

		// then
		assert.NotEmpty(t, events)
		for _, e := range events {
			assert.False(t, e.EventDate.Before(rangeStart))
			assert.False(t, e.EventDate.After(rangeEnd))
		}
	})

	t.Run("should produce deterministic output for repeated runs", func(t *testing.T) {
		// given
		templates := []regular_event.RegularEvent{
			{Title: "Sunday service", DayOfWeek: time.Sunday, EventTime: "10:00"},
		}

		// when
		first := BuildFixedEvents(1, start, end, templates)
		second := BuildFixedEvents(1, start, end, templates)

		// then
		assert.Equal(t, first, second)
	})
}

func TestBuildFixedEventsDefaultSchedule(t *testing.T) {
	start := date(2025, time.March, 1)
	end := date(2025, time.March, 31)

	t.Run("should fall back to the default schedule when no templates exist", func(t *testing.T) {
		// when
		events := BuildFixedEvents(1, start, end, nil)

		// then
		byKey := make(map[Key]bool)
		for _, e := range events {
			byKey[e.Key()] = true
		}

		// two Sunday services on each of the five Sundays
		for _, day := range []int{2, 9, 16, 23, 30} {
			d := date(2025, time.March, day).Format(time.DateOnly)
			assert.True(t, byKey[Key{Date: d, Time: "10:00", Title: "Sunday morning service"}])
			assert.True(t, byKey[Key{Date: d, Time: "18:00", Title: "Sunday evening service"}])
		}

		// fasting services on the weekdays of days 1-7 only (Mar 3-7)
		for _, day := range []int{3, 4, 5, 6, 7} {
			d := date(2025, time.March, day).Format(time.DateOnly)
			assert.True(t, byKey[Key{Date: d, Time: "19:30", Title: "Fasting and prayer service"}])
		}
		assert.False(t, byKey[Key{Date: "2025-03-10", Time: "19:30", Title: "Fasting and prayer service"}])

		// Wednesday prayer services skip the first week
		assert.False(t, byKey[Key{Date: "2025-03-05", Time: "19:00", Title: "Prayer service"}])
		for _, day := range []int{12, 19, 26} {
			d := date(2025, time.March, day).Format(time.DateOnly)
			assert.True(t, byKey[Key{Date: d, Time: "19:00", Title: "Prayer service"}])
		}
	})

	t.Run("should not schedule anything on Saturdays", func(t *testing.T) {
		// when
		events := BuildFixedEvents(1, start, end, nil)

		// then
		for _, e := range events {
			assert.NotEqual(t, time.Saturday, e.EventDate.Weekday())
		}
	})
}
